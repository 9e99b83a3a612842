// Package markdown turns the server readme into HTML that can be viewed
// away from the server: relative link and image targets are resolved against
// the readme's own URL, and the result is sanitized.
package markdown

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts readme markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a renderer for a document served at docURL, e.g.
// "http://127.0.0.1:8167/static/readme.md". An empty or unparsable docURL
// leaves destinations as written.
func New(docURL string) *Renderer {
	var opts []parser.Option
	if base, err := url.Parse(docURL); err == nil && base.IsAbs() {
		opts = append(opts, parser.WithASTTransformers(
			util.Prioritized(&resolveLinks{base: base}, 100),
		))
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(opts...),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// ToHTML renders src. Empty input gives empty output.
func (r *Renderer) ToHTML(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return r.policy.Sanitize(src)
	}
	return r.policy.Sanitize(buf.String())
}

// resolveLinks rewrites relative link and image destinations to absolute
// URLs. Fragments and absolute URLs are left alone.
type resolveLinks struct {
	base *url.URL
}

func (t *resolveLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = t.resolve(v.Destination)
		case *ast.Image:
			v.Destination = t.resolve(v.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (t *resolveLinks) resolve(dest []byte) []byte {
	s := string(dest)
	if s == "" || strings.HasPrefix(s, "#") {
		return dest
	}
	ref, err := url.Parse(s)
	if err != nil || ref.IsAbs() {
		return dest
	}
	return []byte(t.base.ResolveReference(ref).String())
}
