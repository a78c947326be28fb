package render

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/starford/blogon/internal/models"
)

var tocKey = parser.NewContextKey()

// TOC returns the table of contents computed while parsing with pc.
func TOC(pc parser.Context) []models.Heading {
	if v := pc.Get(tocKey); v != nil {
		return v.([]models.Heading)
	}
	return nil
}

// sectionCounter assigns hierarchical section numbers to a sequence of
// headings. The cursor starts at depth 1.
type sectionCounter struct {
	path  [models.MaxDepth]uint16
	level models.HeadingLevel
}

func newSectionCounter() *sectionCounter {
	return &sectionCounter{level: models.H1}
}

// next moves to a heading at the given level and returns its path.
//
// Going deeper leaves the skipped counters alone; going back up (or staying)
// zeroes every counter deeper than level. Overflowing a counter panics: 65535
// sections at one depth means a logic error, not bad input.
func (c *sectionCounter) next(level models.HeadingLevel) [models.MaxDepth]uint16 {
	if level <= c.level {
		for i := int(level); i < models.MaxDepth; i++ {
			c.path[i] = 0
		}
	}
	c.level = level
	i := int(level) - 1
	if c.path[i] == math.MaxUint16 {
		panic(fmt.Sprintf("render: section counter overflow at depth %d", level))
	}
	c.path[i]++
	return c.path
}

// tocTransformer numbers every heading of the document, stores the table of
// contents in the parser context, then appends a permalink anchor to each
// heading.
type tocTransformer struct {
	logger *slog.Logger
}

func (t *tocTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	counter := newSectionCounter()
	var toc []models.Heading
	var headings []*ast.Heading

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		level, err := models.ParseHeadingLevel(heading.Level)
		if err != nil {
			t.logger.Warn("render: skipping heading", slog.String("error", err.Error()))
			return ast.WalkSkipChildren, nil
		}
		toc = append(toc, models.Heading{
			Name:  t.headingName(heading, source),
			Level: level,
			Path:  counter.next(level),
		})
		headings = append(headings, heading)
		return ast.WalkSkipChildren, nil
	})

	for i, heading := range headings {
		heading.AppendChild(heading, newSectionAnchor(toc[i].ID()))
	}

	pc.Set(tocKey, toc)
}

// headingName flattens the inline content of a heading to plain text.
// Emphasis, strikethrough and code spans are transparent; other inline kinds
// lose their markup but keep their text. Backslash escapes and character
// references are decoded everywhere except inside code spans.
func (t *tocTransformer) headingName(heading *ast.Heading, source []byte) string {
	var name strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n == heading {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			value := n.Segment.Value(source)
			if _, code := n.Parent().(*ast.CodeSpan); !code {
				value = decodeText(value)
			}
			name.Write(value)
			if n.SoftLineBreak() || n.HardLineBreak() {
				name.WriteByte(' ')
			}
		case *ast.String:
			name.Write(n.Value)
		case *ast.Emphasis, *ast.CodeSpan, *east.Strikethrough:
		default:
			t.logger.Warn("render: unsupported element in heading name",
				slog.String("kind", n.Kind().String()))
		}
		return ast.WalkContinue, nil
	})
	return name.String()
}

func decodeText(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
