package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// KindSectionAnchor is the node kind of a heading permalink.
var KindSectionAnchor = ast.NewNodeKind("SectionAnchor")

// SectionAnchor is an inline node rendered as a self-referencing link at the
// end of a heading.
type SectionAnchor struct {
	ast.BaseInline
	ID string
}

func newSectionAnchor(id string) *SectionAnchor {
	return &SectionAnchor{ID: id}
}

// Kind implements ast.Node.
func (n *SectionAnchor) Kind() ast.NodeKind {
	return KindSectionAnchor
}

// Dump implements ast.Node.
func (n *SectionAnchor) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": n.ID}, nil)
}

type sectionAnchorRenderer struct{}

func (r *sectionAnchorRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSectionAnchor, r.render)
}

func (r *sectionAnchorRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	id := util.EscapeHTML([]byte(node.(*SectionAnchor).ID))
	_, _ = w.WriteString(` <a href="#`)
	_, _ = w.Write(id)
	_, _ = w.WriteString(`" id="`)
	_, _ = w.Write(id)
	_, _ = w.WriteString(`"><span class="heading-anchor">#</span></a>`)
	return ast.WalkSkipChildren, nil
}

// sectionNumbering is the goldmark extension numbering headings and adding
// their anchors.
type sectionNumbering struct {
	transformer *tocTransformer
}

func (e *sectionNumbering) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(e.transformer, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&sectionAnchorRenderer{}, 500),
	))
}
