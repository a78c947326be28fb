// Package models defines the domain types for blogon.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/starford/blogon/internal/slug"
)

// DateLayout is the text form of a publish date.
const DateLayout = "2006-01-02"

// Date is a calendar day, held as UTC midnight.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// NewDate returns the Date for the given day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Metadata is the structured header of a post. A nil Date marks a draft.
type Metadata struct {
	Title string   `json:"title" yaml:"title"`
	Date  *Date    `json:"date" yaml:"date"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// IsDraft reports whether the post has no publish date.
func (m Metadata) IsDraft() bool {
	return m.Date == nil
}

// FrontMatter is one catalog entry: the slug and the metadata of a post.
type FrontMatter struct {
	Slug     string   `json:"slug"`
	Metadata Metadata `json:"metadata"`
}

// HeadingLevel is the nesting depth of a heading, 1 to 6.
type HeadingLevel uint8

// Heading levels.
const (
	H1 HeadingLevel = iota + 1
	H2
	H3
	H4
	H5
	H6
)

// MaxDepth is the number of heading levels, and the size of a heading path.
const MaxDepth = int(H6)

// ParseHeadingLevel converts a depth into a HeadingLevel.
func ParseHeadingLevel(depth int) (HeadingLevel, error) {
	if depth < int(H1) || depth > int(H6) {
		return 0, fmt.Errorf("expected heading level in [1, 6] but got %d", depth)
	}
	return HeadingLevel(depth), nil
}

func (l HeadingLevel) String() string {
	return "h" + strconv.Itoa(int(l))
}

// Heading is one table of contents entry.
//
// Name is the heading text stripped of any formatting. Path holds the section
// number at each depth; only the first Level counters are meaningful.
type Heading struct {
	Name  string           `json:"name"`
	Level HeadingLevel     `json:"level"`
	Path  [MaxDepth]uint16 `json:"path"`
}

// SectionNumber returns the dotted section number, e.g. "1.1.0.1".
func (h Heading) SectionNumber() string {
	parts := make([]string, 0, h.Level)
	for _, n := range h.Path[:h.Level] {
		parts = append(parts, strconv.FormatUint(uint64(n), 10))
	}
	return strings.Join(parts, ".")
}

func (h Heading) String() string {
	return h.SectionNumber() + " " + h.Name
}

// ID is the HTML id of the heading's permalink anchor.
func (h Heading) ID() string {
	return slug.Make(h.String())
}

// Post is a rendered document.
type Post struct {
	FrontMatter FrontMatter `json:"front_matter"`
	TOC         []Heading   `json:"toc"`
	HTMLBody    string      `json:"html_body"`
}
