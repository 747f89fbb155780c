package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/geoscope/internal/model"
)

// Analyzer analyzes one (source, response) URL pair.
type Analyzer interface {
	AnalyzePair(ctx context.Context, sourceURL, responseURL string) (*model.AnalysisReport, error)
}

// Pair is one batch input line: a response URL, optionally preceded by
// the source URL it should be attributed against.
type Pair struct {
	SourceURL   string
	ResponseURL string
}

// AnalyzeJob runs one pair through the analyzer.
type AnalyzeJob struct {
	Pair     Pair
	Analyzer Analyzer
}

// Execute implements Job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzePair(ctx, j.Pair.SourceURL, j.Pair.ResponseURL)
	return &AnalyzeResult{Pair: j.Pair, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one batch pair.
type AnalyzeResult struct {
	Pair   Pair
	Report *model.AnalysisReport
	Error  error
}

// GetError implements Result.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple pairs concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessPairs runs all pairs through the worker pool. Cancelling ctx
// aborts queued and running jobs.
func (b *BatchProcessor) ProcessPairs(ctx context.Context, pairs []Pair) []*AnalyzeResult {
	if len(pairs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submission runs concurrently with collection: both pool channels
	// are bounded, so a synchronous submit loop deadlocks once the input
	// outgrows their capacity.
	go func() {
		for _, pair := range pairs {
			pool.Submit(&AnalyzeJob{Pair: pair, Analyzer: b.analyzer})
		}
		pool.CloseQueue()
	}()

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}
	return analyzeResults
}

// ProcessFile reads pairs from a file and processes them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	pairs, err := ReadPairsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read pairs: %w", err)
	}
	return b.ProcessPairs(ctx, pairs), nil
}

// ReadPairsFromFile reads batch input. Each non-empty, non-comment line
// holds either "response_url" or "source_url response_url". Duplicate
// lines are dropped.
func ReadPairsFromFile(filePath string) ([]Pair, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var pairs []Pair
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			pairs = append(pairs, Pair{ResponseURL: fields[0]})
		case 2:
			pairs = append(pairs, Pair{SourceURL: fields[0], ResponseURL: fields[1]})
		default:
			return nil, fmt.Errorf("malformed line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return pairs, nil
}
