package model

// PageStructure is the structural metadata extracted from an HTML page.
// The scoring core never sees raw markup; it receives this map plus the
// already-isolated body text.
type PageStructure struct {
	Title    string              `json:"title,omitempty"`
	Headings map[string][]string `json:"headings,omitempty"` // "h1".."h6" -> heading texts in document order
	MetaTags map[string]string   `json:"meta_tags,omitempty"` // description, keywords, og_* ...
	BodyText string              `json:"-"`                   // main-body plain text, scripts/styles stripped
}

// HeadingCount returns the number of headings at the given level ("h1".."h6").
func (p *PageStructure) HeadingCount(level string) int {
	if p == nil || p.Headings == nil {
		return 0
	}
	return len(p.Headings[level])
}

// Meta returns the named meta tag value, or "" when absent.
func (p *PageStructure) Meta(name string) string {
	if p == nil || p.MetaTags == nil {
		return ""
	}
	return p.MetaTags[name]
}
