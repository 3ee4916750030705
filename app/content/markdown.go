package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts a Markdown body into HTML.
type Renderer interface {
	Render(source []byte) (template.HTML, error)
}

// MarkdownRenderer renders Markdown with goldmark. Raw HTML in the source is
// passed through untouched, posts are written by the site owner.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer returns a renderer with GitHub flavoured Markdown enabled.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts source to HTML.
func (r *MarkdownRenderer) Render(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return template.HTML(buf.String()), nil
}
