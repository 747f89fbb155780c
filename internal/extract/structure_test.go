package extract

import (
	"strings"
	"testing"
)

const samplePage = `
<!DOCTYPE html>
<html>
<head>
	<title>  Örnek Sayfa Başlığı  </title>
	<meta name="description" content="Bu sayfa yapı çıkarma testleri için kullanılır.">
	<meta name="keywords" content="test, analiz">
	<meta property="og:title" content="Örnek OG Başlık">
	<meta property="og:type" content="article">
	<script>var ignored = true;</script>
	<style>.ignored { display: none; }</style>
</head>
<body>
	<nav><p>Menü bağlantıları</p></nav>
	<header><p>Üst bilgi</p></header>
	<h1>Ana Başlık</h1>
	<h2>Birinci Bölüm</h2>
	<h2>İkinci Bölüm</h2>
	<p>Birinci paragraf metni burada.</p>
	<p>İkinci paragraf metni burada.</p>
	<footer><p>Alt bilgi</p></footer>
</body>
</html>
`

func TestExtract_TitleAndMetaTags(t *testing.T) {
	extractor := NewStructureExtractor()

	structure, err := extractor.Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if structure.Title != "Örnek Sayfa Başlığı" {
		t.Errorf("title = %q", structure.Title)
	}
	if structure.MetaTags["title"] != structure.Title {
		t.Errorf("meta title = %q, want mirror of <title>", structure.MetaTags["title"])
	}
	if structure.MetaTags["description"] != "Bu sayfa yapı çıkarma testleri için kullanılır." {
		t.Errorf("description = %q", structure.MetaTags["description"])
	}
	if structure.MetaTags["keywords"] != "test, analiz" {
		t.Errorf("keywords = %q", structure.MetaTags["keywords"])
	}
	if structure.MetaTags["og_title"] != "Örnek OG Başlık" {
		t.Errorf("og_title = %q", structure.MetaTags["og_title"])
	}
	if structure.MetaTags["og_type"] != "article" {
		t.Errorf("og_type = %q", structure.MetaTags["og_type"])
	}
}

func TestExtract_HeadingsByLevel(t *testing.T) {
	extractor := NewStructureExtractor()

	structure, err := extractor.Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if got := structure.HeadingCount("h1"); got != 1 {
		t.Errorf("h1 count = %d, want 1", got)
	}
	if got := structure.HeadingCount("h2"); got != 2 {
		t.Errorf("h2 count = %d, want 2", got)
	}
	if structure.Headings["h1"][0] != "Ana Başlık" {
		t.Errorf("h1 text = %q", structure.Headings["h1"][0])
	}
}

func TestExtract_BodyTextDropsChrome(t *testing.T) {
	extractor := NewStructureExtractor()

	structure, err := extractor.Extract(samplePage)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !strings.Contains(structure.BodyText, "Birinci paragraf metni burada.") {
		t.Errorf("body text missing paragraph: %q", structure.BodyText)
	}
	for _, chrome := range []string{"Menü bağlantıları", "Üst bilgi", "Alt bilgi", "var ignored"} {
		if strings.Contains(structure.BodyText, chrome) {
			t.Errorf("body text contains chrome %q", chrome)
		}
	}

	// Paragraphs joined with blank lines so downstream paragraph
	// counting sees two paragraphs.
	if !strings.Contains(structure.BodyText, "\n\n") {
		t.Errorf("paragraphs not blank-line separated: %q", structure.BodyText)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	extractor := NewStructureExtractor()

	structure, err := extractor.Extract("")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if structure.Title != "" || len(structure.Headings) != 0 || structure.BodyText != "" {
		t.Errorf("expected empty structure, got %+v", structure)
	}
}

func TestVisibleText_SkipsScriptsAndCollapsesWhitespace(t *testing.T) {
	extractor := NewStructureExtractor()

	visible, err := extractor.VisibleText("<div>bir   <script>x()</script> iki\n\nüç</div>")
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}
	if visible != "bir iki üç" {
		t.Errorf("visible = %q, want %q", visible, "bir iki üç")
	}
}

func TestAnalyzeURL(t *testing.T) {
	parts, err := AnalyzeURL("https://example.com/yol/sayfa?q=1")
	if err != nil {
		t.Fatalf("AnalyzeURL: %v", err)
	}
	if parts.Scheme != "https" || parts.Domain != "example.com" || parts.Path != "/yol/sayfa" || parts.Query != "q=1" {
		t.Errorf("unexpected parts: %+v", parts)
	}
}
