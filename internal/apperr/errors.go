// Package apperr defines the error kinds surfaced by the content store.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrIO is a failure of the underlying file system. Always a server fault.
	ErrIO = errors.New("io failure")
	// ErrMalformed marks a document whose content does not conform.
	ErrMalformed = errors.New("malformed content")
	// ErrNotFound marks a client supplied identifier that does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrMissingFrontMatter is wrapped in a malformed error when the metadata
	// block boundaries cannot be found.
	ErrMissingFrontMatter = errors.New("front matter is missing")
)

// Error carries the kind of failure together with the file path or slug it
// relates to.
type Error struct {
	Kind error
	Path string
	Slug string
	Err  error
}

// IO wraps err as an ErrIO failure on path.
func IO(path string, err error) *Error {
	return &Error{Kind: ErrIO, Path: path, Err: err}
}

// Malformed wraps err as an ErrMalformed failure on path.
func Malformed(path string, err error) *Error {
	return &Error{Kind: ErrMalformed, Path: path, Err: err}
}

// Malformedf formats a description of a malformed document.
func Malformedf(path, format string, args ...any) *Error {
	return Malformed(path, fmt.Errorf(format, args...))
}

// NotFound reports that slug does not resolve to a post.
func NotFound(slug string, err error) *Error {
	return &Error{Kind: ErrNotFound, Slug: slug, Err: err}
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrIO:
		return fmt.Sprintf("could not read %q: %v", e.Path, e.Err)
	case ErrMalformed:
		return fmt.Sprintf("could not parse %q: %v", e.Path, e.Err)
	case ErrNotFound:
		return fmt.Sprintf("could not find post %q: %v", e.Slug, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// HTTPStatus maps an error to the status a web collaborator should answer.
func HTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
