package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/geoscope/internal/model"
)

func writePairsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pairs file: %v", err)
	}
	return path
}

func TestReadPairsFromFile(t *testing.T) {
	path := writePairsFile(t, `# yorum satırı
https://kaynak.example.com/a https://yanit.example.com/a

https://yanit.example.com/b
https://kaynak.example.com/a https://yanit.example.com/a
`)

	pairs, err := ReadPairsFromFile(path)
	if err != nil {
		t.Fatalf("ReadPairsFromFile: %v", err)
	}

	want := []Pair{
		{SourceURL: "https://kaynak.example.com/a", ResponseURL: "https://yanit.example.com/a"},
		{ResponseURL: "https://yanit.example.com/b"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("pairs = %+v, want %+v", pairs, want)
	}
}

func TestReadPairsFromFile_MalformedLine(t *testing.T) {
	path := writePairsFile(t, "bir iki üç\n")

	if _, err := ReadPairsFromFile(path); err == nil {
		t.Error("expected error for three-field line")
	}
}

func TestReadPairsFromFile_MissingFile(t *testing.T) {
	if _, err := ReadPairsFromFile(filepath.Join(t.TempDir(), "yok.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

type stubAnalyzer struct {
	failURL string
}

func (s *stubAnalyzer) AnalyzePair(ctx context.Context, sourceURL, responseURL string) (*model.AnalysisReport, error) {
	if responseURL == s.failURL {
		return nil, errors.New("analysis failed")
	}
	return &model.AnalysisReport{ResponseURL: responseURL, SourceURL: sourceURL}, nil
}

func TestBatchProcessor_ProcessPairs(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{failURL: "https://bozuk.example.com/"}, 2)

	pairs := []Pair{
		{SourceURL: "https://kaynak.example.com/", ResponseURL: "https://yanit.example.com/"},
		{ResponseURL: "https://bozuk.example.com/"},
		{ResponseURL: "https://saglam.example.com/"},
	}

	results := processor.ProcessPairs(context.Background(), pairs)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	failures := 0
	for _, result := range results {
		if result.GetError() != nil {
			failures++
			continue
		}
		if result.Report == nil || result.Report.ResponseURL != result.Pair.ResponseURL {
			t.Errorf("report does not match pair: %+v", result)
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestBatchProcessor_LargeInputCompletes(t *testing.T) {
	// More pairs than the pool's channel capacity can absorb; the batch
	// must still drain every result.
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	pairs := make([]Pair, 100)
	for i := range pairs {
		pairs[i] = Pair{ResponseURL: fmt.Sprintf("https://yanit.example.com/%d", i)}
	}

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- processor.ProcessPairs(context.Background(), pairs) }()

	select {
	case results := <-done:
		if len(results) != 100 {
			t.Errorf("results = %d, want 100", len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch stalled with more pairs than channel capacity")
	}
}

type blockingAnalyzer struct{}

func (blockingAnalyzer) AnalyzePair(ctx context.Context, sourceURL, responseURL string) (*model.AnalysisReport, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBatchProcessor_CancelledContextReturnsPromptly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(blockingAnalyzer{}, 2)
	pairs := []Pair{
		{ResponseURL: "https://yanit.example.com/a"},
		{ResponseURL: "https://yanit.example.com/b"},
	}

	done := make(chan []*AnalyzeResult, 1)
	go func() { done <- processor.ProcessPairs(ctx, pairs) }()

	select {
	case results := <-done:
		for _, result := range results {
			if result.GetError() == nil {
				t.Errorf("job finished without error under cancelled context: %+v", result)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not stop after context cancellation")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)
	results := processor.ProcessPairs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writePairsFile(t, "https://yanit.example.com/tek\n")

	processor := NewBatchProcessor(&stubAnalyzer{}, 1)
	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 1 || results[0].Report.ResponseURL != "https://yanit.example.com/tek" {
		t.Errorf("unexpected results: %+v", results)
	}
}
