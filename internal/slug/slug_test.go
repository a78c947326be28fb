package slug

import (
	"errors"
	"testing"

	"github.com/starford/blogon/internal/apperr"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0001_hello_world", "0001-hello-world"},
		{"Hello World", "hello-world"},
		{"  --Leading and trailing--  ", "leading-and-trailing"},
		{"Café au lait", "cafe-au-lait"},
		{"Ünïcödé_Ñame", "unicode-name"},
		{"1.1.0.1 Deep `code` heading", "1-1-0-1-deep-code-heading"},
		{"a___b...c", "a-b-c"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"1-toc", "0001_toc.md"},
		{"0012-hello-world", "0012_hello_world.md"},
		{"20240601-a-b-c", "20240601_a_b_c.md"},
		{"7", "0007_.md"},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got, err := FileName(tt.slug)
			if err != nil {
				t.Fatalf("FileName: %v", err)
			}
			if got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestFileName_NotFound(t *testing.T) {
	for _, s := range []string{"", "abc", "-1-x", "abc-1", "99999999999-x", "1-../etc", "1-a/b"} {
		t.Run(s, func(t *testing.T) {
			_, err := FileName(s)
			if err == nil {
				t.Fatalf("expected error for %q", s)
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("error = %v, want not found kind", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, stem := range []string{"0001_toc", "0042_hello_world", "2024_year_in_review"} {
		got, err := FileName(Make(stem))
		if err != nil {
			t.Fatalf("FileName(Make(%q)): %v", stem, err)
		}
		if got != stem+".md" {
			t.Errorf("round trip of %q = %q", stem, got)
		}
	}
}
