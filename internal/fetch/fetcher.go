// Package fetch retrieves documents over HTTP and hands the scoring
// pipeline already-decoded plain text. All network concerns (charset
// detection, retries, robots.txt, rate limiting) stop here.
package fetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/util"
	"github.com/ppiankov/geoscope/internal/worker"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const fetchMaxRetries = 3

// sleepFunc is the sleep used between retries (injectable for tests).
var sleepFunc = time.Sleep

// Fetcher fetches and decodes documents.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots compliance is disabled
	limiter    *worker.Limiter     // nil when rate limiting is disabled
}

// NewFetcher creates a fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}

	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	if cfg.RatePerDomain > 0 {
		f.limiter = worker.NewLimiter(cfg.RatePerDomain, cfg.RateBurst)
	}

	return f
}

// Result contains the fetched, decoded document and metadata.
type Result struct {
	Text     string // decoded body
	Meta     model.FetchMeta
	FinalURL string
}

// Fetch retrieves the document at rawURL, honoring robots.txt and the
// per-domain rate limit, retrying transient failures with exponential
// backoff, and decoding the body per the charset detection order:
// Content-Type header, meta tag, then Turkish encoding fallbacks.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(crawlDelay):
			}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var result *Result
	var err error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		result, err = f.fetchOnce(ctx, rawURL)
		if err == nil || !isRetryable(err) {
			return result, err
		}
		if attempt < fetchMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return result, err
}

// retryableError marks transient HTTP failures (5xx, 429).
type retryableError struct{ status int }

func (e *retryableError) Error() string {
	return fmt.Sprintf("transient status: %d", e.status)
}

func isRetryable(err error) bool {
	_, ok := err.(*retryableError)
	return ok
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &retryableError{status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	text, encodingName := DecodeBody(body, contentType)

	return &Result{
		Text: text,
		Meta: model.FetchMeta{
			StatusCode:   resp.StatusCode,
			ContentType:  contentType,
			LastModified: resp.Header.Get("Last-Modified"),
			ETag:         resp.Header.Get("ETag"),
			Encoding:     encodingName,
		},
		FinalURL: resp.Request.URL.String(),
	}, nil
}

var metaCharsetRe = regexp.MustCompile(`(?i)charset=["']?([^"'>\s;]+)`)

// DecodeBody decodes raw bytes into a string. Detection order: charset
// parameter of the Content-Type header, charset declared in the
// document itself, then the common Turkish encodings (utf-8,
// iso-8859-9, windows-1254). Returns the text and the encoding used.
func DecodeBody(body []byte, contentType string) (string, string) {
	if label := charsetFromContentType(contentType); label != "" {
		if enc, name := charset.Lookup(label); enc != nil {
			if decoded, err := decodeWith(enc, body); err == nil {
				return decoded, name
			}
		}
	}

	// Sniff a charset declaration from the document head.
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := metaCharsetRe.FindSubmatch(bytes.ToLower(head)); m != nil {
		if enc, name := charset.Lookup(string(m[1])); enc != nil {
			if decoded, err := decodeWith(enc, body); err == nil {
				return decoded, name
			}
		}
	}

	// Turkish fallbacks.
	if utf8.Valid(body) {
		return string(body), "utf-8"
	}
	if decoded, err := decodeWith(charmap.ISO8859_9, body); err == nil {
		return decoded, "iso-8859-9"
	}
	if decoded, err := decodeWith(charmap.Windows1254, body); err == nil {
		return decoded, "windows-1254"
	}

	// Last resort: lossy utf-8.
	return strings.ToValidUTF8(string(body), "�"), "utf-8"
}

func charsetFromContentType(contentType string) string {
	lower := strings.ToLower(contentType)
	idx := strings.Index(lower, "charset=")
	if idx < 0 {
		return ""
	}
	label := lower[idx+len("charset="):]
	if semi := strings.IndexByte(label, ';'); semi >= 0 {
		label = label[:semi]
	}
	return strings.Trim(strings.TrimSpace(label), `"'`)
}

func decodeWith(enc encoding.Encoding, body []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
