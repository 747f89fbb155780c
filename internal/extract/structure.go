// Package extract isolates structural metadata and main-body text from
// HTML documents so the scoring core never touches raw markup.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/geoscope/internal/model"
	"golang.org/x/net/html"
)

// StructureExtractor parses HTML into a PageStructure.
type StructureExtractor struct{}

// NewStructureExtractor creates a new structure extractor.
func NewStructureExtractor() *StructureExtractor {
	return &StructureExtractor{}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Extract parses the document and pulls out the title, heading texts by
// level, meta tags (description, keywords, og:*) and the main-body text
// (paragraph tags with scripts, styles and chrome stripped).
func (e *StructureExtractor) Extract(htmlContent string) (*model.PageStructure, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	structure := &model.PageStructure{
		Headings: make(map[string][]string),
		MetaTags: make(map[string]string),
	}

	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "header":
				return
			case "title":
				structure.Title = strings.TrimSpace(nodeText(n))
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					structure.Headings[n.Data] = append(structure.Headings[n.Data], text)
				}
			case "meta":
				e.collectMeta(n, structure.MetaTags)
			case "p":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return // avoid re-collecting nested text
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if structure.Title != "" {
		structure.MetaTags["title"] = structure.Title
	}

	// Paragraphs joined with blank lines so the quality scorer's
	// paragraph count survives the round trip.
	structure.BodyText = strings.Join(paragraphs, "\n\n")

	return structure, nil
}

// VisibleText extracts all visible text from the document, whitespace
// collapsed. Used when no paragraph tags exist to anchor body text.
func (e *StructureExtractor) VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(buf.String(), " ")), nil
}

// collectMeta records description/keywords meta tags and Open Graph
// properties under og_* keys.
func (e *StructureExtractor) collectMeta(n *html.Node, tags map[string]string) {
	var name, property, content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = strings.ToLower(strings.TrimSpace(attr.Val))
		case "property":
			property = strings.ToLower(strings.TrimSpace(attr.Val))
		case "content":
			content = strings.TrimSpace(attr.Val)
		}
	}

	switch {
	case name == "description" || name == "keywords":
		tags[name] = content
	case strings.HasPrefix(property, "og:"):
		tags["og_"+property[3:]] = content
	}
}

// nodeText concatenates the text nodes under n.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return whitespaceRun.ReplaceAllString(buf.String(), " ")
}

// URLParts breaks a URL into its components, mirroring the report's
// url_analysis block.
type URLParts struct {
	Scheme string `json:"scheme"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
	Query  string `json:"query"`
}

// AnalyzeURL splits a raw URL into components.
func AnalyzeURL(rawURL string) (URLParts, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return URLParts{}, err
	}
	return URLParts{
		Scheme: parsed.Scheme,
		Domain: parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.RawQuery,
	}, nil
}
