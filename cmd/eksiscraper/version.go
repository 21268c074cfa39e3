package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Injected via -ldflags on release builds. Source and `go install`
// builds leave them empty and fall back to the metadata the toolchain
// embeds in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata describes how the running binary was produced.
type buildMetadata struct {
	Version   string
	Revision  string
	BuiltAt   string
	Toolchain string
}

// resolveBuildMetadata merges the ldflags values with the binary's
// embedded build info, ldflags winning where both exist.
func resolveBuildMetadata() buildMetadata {
	meta := buildMetadata{
		Version:  version,
		Revision: commit,
		BuiltAt:  date,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		meta.Toolchain = info.GoVersion
		if meta.Version == "" {
			meta.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if meta.Revision == "" {
					meta.Revision = setting.Value
				}
			case "vcs.time":
				if meta.BuiltAt == "" {
					meta.BuiltAt = setting.Value
				}
			}
		}
	}

	if meta.Version == "" {
		meta.Version = "(devel)"
	}
	if len(meta.Revision) > 7 {
		meta.Revision = meta.Revision[:7]
	}
	if meta.Revision == "" {
		meta.Revision = "unknown"
	}
	if meta.BuiltAt == "" {
		meta.BuiltAt = "unknown"
	}
	if meta.Toolchain == "" {
		meta.Toolchain = "unknown"
	}

	return meta
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return resolveBuildMetadata().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, VCS revision, build timestamp and Go toolchain of eksiscraper.`,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := resolveBuildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "eksiscraper %s (revision %s, built %s, %s)\n",
				meta.Version, meta.Revision, meta.BuiltAt, meta.Toolchain)
		},
	}
}
