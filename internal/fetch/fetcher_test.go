package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/geoscope/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "Geoscope-test/0.1",
		MaxBodyBytes: 1 << 20,
		// robots and rate limiting off so tests hit the server directly
	}
}

// iso8859_9 encodes "ığüşöç" in ISO-8859-9.
var iso8859_9Sample = []byte{0xFD, 0xF0, 0xFC, 0xFE, 0xF6, 0xE7}

func TestDecodeBody_CharsetFromContentType(t *testing.T) {
	text, encoding := DecodeBody(iso8859_9Sample, "text/html; charset=iso-8859-9")

	if text != "ığüşöç" {
		t.Errorf("decoded = %q, want %q", text, "ığüşöç")
	}
	if encoding != "iso-8859-9" {
		t.Errorf("encoding = %q, want iso-8859-9", encoding)
	}
}

func TestDecodeBody_CharsetFromMetaTag(t *testing.T) {
	body := append([]byte(`<html><head><meta charset="iso-8859-9"></head><body>`), iso8859_9Sample...)
	body = append(body, []byte("</body></html>")...)

	text, encoding := DecodeBody(body, "text/html")

	if !strings.Contains(text, "ığüşöç") {
		t.Errorf("decoded = %q, want to contain %q", text, "ığüşöç")
	}
	if encoding != "iso-8859-9" {
		t.Errorf("encoding = %q, want iso-8859-9", encoding)
	}
}

func TestDecodeBody_ValidUTF8Fallback(t *testing.T) {
	text, encoding := DecodeBody([]byte("zaten utf-8 metin: ğüş"), "text/html")

	if text != "zaten utf-8 metin: ğüş" {
		t.Errorf("decoded = %q", text)
	}
	if encoding != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", encoding)
	}
}

func TestDecodeBody_TurkishFallbackWithoutDeclaration(t *testing.T) {
	// No header, no meta tag, bytes invalid as UTF-8: the Turkish
	// fallback chain decodes as ISO-8859-9.
	text, encoding := DecodeBody(iso8859_9Sample, "")

	if text != "ığüşöç" {
		t.Errorf("decoded = %q, want %q", text, "ığüşöç")
	}
	if encoding != "iso-8859-9" {
		t.Errorf("encoding = %q, want iso-8859-9", encoding)
	}
}

func TestCharsetFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"text/html; charset=utf-8", "utf-8"},
		{"text/html; charset=UTF-8; boundary=x", "utf-8"},
		{`text/html; charset="iso-8859-9"`, "iso-8859-9"},
		{"text/html", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := charsetFromContentType(tt.contentType); got != tt.want {
			t.Errorf("charsetFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Geoscope-test/0.1" {
			t.Errorf("user agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		_, _ = w.Write([]byte("<html><body>içerik</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(result.Text, "içerik") {
		t.Errorf("text = %q", result.Text)
	}
	if result.Meta.StatusCode != 200 {
		t.Errorf("status = %d", result.Meta.StatusCode)
	}
	if result.Meta.LastModified == "" {
		t.Errorf("expected Last-Modified metadata")
	}
	if result.Meta.Encoding != "utf-8" {
		t.Errorf("encoding = %q", result.Meta.Encoding)
	}
}

func TestFetch_RetriesTransientFailures(t *testing.T) {
	original := sleepFunc
	sleepFunc = func(time.Duration) {}
	defer func() { sleepFunc = original }()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("sonunda"))
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if result.Text != "sonunda" {
		t.Errorf("text = %q", result.Text)
	}
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	original := sleepFunc
	sleepFunc = func(time.Duration) {}
	defer func() { sleepFunc = original }()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on 4xx)", attempts)
	}
}

func TestFetch_BodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100

	fetcher := NewFetcher(cfg)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(result.Text) != 100 {
		t.Errorf("body length = %d, want capped at 100", len(result.Text))
	}
}
