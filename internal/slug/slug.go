// Package slug converts between post file names and URL-safe identifiers.
package slug

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/starford/blogon/internal/apperr"
)

// Make lower-cases and ASCII-folds s, replaces every run of characters that
// are not ASCII letters or digits with a single hyphen, and trims hyphens at
// both ends.
func Make(s string) string {
	folded, _, err := transform.String(fold(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		r = unicode.ToLower(r)
		if isAlnum(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// fold strips diacritics: é -> e, ñ -> n.
func fold() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}

// FileName rebuilds the stored file name of a post from its slug:
// "12-hello-world" becomes "0012_hello_world.md".
//
// This is a convention, not the inverse of Make: only file names of the form
// NNNN_words.md survive the round trip.
func FileName(s string) (string, error) {
	number, rest, _ := strings.Cut(s, "-")
	if number == "" {
		return "", apperr.NotFound(s, errors.New("empty slug"))
	}
	n, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return "", apperr.NotFound(s, err)
	}
	if strings.ContainsAny(rest, `/\`) || strings.Contains(rest, "..") {
		return "", apperr.NotFound(s, errors.New("invalid characters in slug"))
	}
	return fmt.Sprintf("%04d_%s.md", n, strings.ReplaceAll(rest, "-", "_")), nil
}
