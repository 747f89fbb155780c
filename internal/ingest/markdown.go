// Package ingest flattens non-HTML response documents (saved engine
// answers are usually markdown) into plain text for scoring.
package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// MarkdownToText strips markdown formatting and returns the plain text,
// with block boundaries preserved as blank lines so paragraph counting
// still works downstream.
func MarkdownToText(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(gtext.NewReader(source))

	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteString(" ")
				}
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if !entering {
				buf.WriteString("\n\n")
			}
		case *ast.CodeSpan:
			// inline code kept as-is via its Text children
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			// code and raw HTML blocks carry no prose; skip entirely
			if entering {
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// LooksLikeHTML reports whether a document should go through the HTML
// structure extractor rather than markdown ingestion.
func LooksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(content))
	return strings.HasPrefix(trimmed, "<!doctype html") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed[:min(len(trimmed), 512)], "<body")
}
