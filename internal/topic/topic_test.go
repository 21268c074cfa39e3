package topic

import (
	"errors"
	"strings"
	"testing"
)

// TestNormalize tests URL validation and query stripping.
func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("strips query string", func(t *testing.T) {
		t.Parallel()

		got, err := Normalize("https://eksisozluk.com/test--114?p=2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://eksisozluk.com/test--114" {
			t.Errorf("expected query stripped, got %q", got)
		}
	})

	t.Run("preserves URL without query", func(t *testing.T) {
		t.Parallel()

		raw := "https://eksisozluk.com/Baslik-Ismi--123456/"
		got, err := Normalize(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != raw {
			t.Errorf("expected %q preserved as given, got %q", raw, got)
		}
	})

	t.Run("accepts subdomain", func(t *testing.T) {
		t.Parallel()

		if _, err := Normalize("https://www.eksisozluk.com/test--1"); err != nil {
			t.Errorf("unexpected error for subdomain: %v", err)
		}
	})

	t.Run("rejects foreign host", func(t *testing.T) {
		t.Parallel()

		_, err := Normalize("https://example.com/test--1")
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})

	t.Run("rejects lookalike host", func(t *testing.T) {
		t.Parallel()

		_, err := Normalize("https://eksisozluk.com.evil.example/test--1")
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})
}

// TestPageURL tests page parameter construction.
func TestPageURL(t *testing.T) {
	t.Parallel()

	got := PageURL("https://eksisozluk.com/test--114", 7)
	if got != "https://eksisozluk.com/test--114?p=7" {
		t.Errorf("unexpected page URL: %q", got)
	}
}

// TestDeriveTitle tests filename-safe title derivation.
func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "typical topic URL",
			in:   "https://eksisozluk.com/pena--31782",
			want: "pena",
		},
		{
			name: "multi-word slug",
			in:   "https://eksisozluk.com/ekmek-arasi-kufte--54321",
			want: "ekmek_arasi_kufte",
		},
		{
			name: "no id separator",
			in:   "https://eksisozluk.com/baslik",
			want: "baslik",
		},
		{
			name: "query string ignored",
			in:   "https://eksisozluk.com/baslik--1?p=3",
			want: "baslik",
		},
		{
			name: "invalid filename characters stripped",
			in:   `https://eksisozluk.com/a<b>c"d|e`,
			want: "abcde",
		},
		{
			name: "empty slug falls back to default",
			in:   "https://eksisozluk.com/----123",
			want: "topic",
		},
		{
			name: "empty input falls back to default",
			in:   "",
			want: "topic",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DeriveTitle(tt.in); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("truncates long slugs to 100 runes", func(t *testing.T) {
		t.Parallel()

		long := "https://eksisozluk.com/" + strings.Repeat("ab-", 60) + "--99"
		got := DeriveTitle(long)
		if len([]rune(got)) > 100 {
			t.Errorf("expected at most 100 runes, got %d", len([]rune(got)))
		}
	})

	t.Run("idempotent on own output", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"https://eksisozluk.com/pena--31782",
			"https://eksisozluk.com/ekmek-arasi-kufte--54321?p=2",
			"https://eksisozluk.com/" + strings.Repeat("uzun-baslik-", 20) + "--1",
			"weird..__input__..",
			"",
		}
		for _, in := range inputs {
			once := DeriveTitle(in)
			twice := DeriveTitle(once)
			if once != twice {
				t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
			}
		}
	})
}
