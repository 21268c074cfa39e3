package report

import (
	"encoding/json"
	"io"

	"github.com/batu-os/eksiscraper/internal/model"
)

// JSONWriter outputs session reports as JSON.
// This format is designed for machine consumption and piping into jq.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(indent bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = indent
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		indent:     true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonReport is the serialized report shape: the session plus its
// computed summary, so consumers don't have to re-aggregate.
type jsonReport struct {
	*model.Session
	Summary model.Summary `json:"summary"`
}

// Write outputs the session report as JSON.
func (w *JSONWriter) Write(session *model.Session) (int, error) {
	doc := jsonReport{
		Session: session,
		Summary: session.Summarize(),
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
