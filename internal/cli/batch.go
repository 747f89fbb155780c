package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ppiankov/geoscope/internal/pipeline"
	"github.com/ppiankov/geoscope/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple URL pairs from a file in parallel",
	Long: `Batch processes multiple document pairs concurrently:
- Read pairs from the input file, one per line:
    response_url
    source_url response_url
- Lines starting with # are ignored
- Pairs run in parallel with a configurable worker count
- Fetches are rate-limited per domain
- One JSON report is written per pair

Example:
  geoscope batch pairs.txt
  geoscope batch pairs.txt --concurrency 10 --output-dir ./reports
  geoscope batch pairs.txt --concurrency 5 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./geoscope-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch input: %s (workers: %d, output: %s)\n\n", file, concurrency, outputDir)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	succeeded, failed := 0, 0
	for i, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Pair.ResponseURL, result.Error)
			continue
		}

		succeeded++
		jsonPath := filepath.Join(outputDir, fmt.Sprintf("report-%03d.json", i+1))
		if err := p.RenderReport(result.Report, jsonPath, "", false); err != nil {
			fmt.Fprintf(os.Stderr, "✗ render %s: %v\n", result.Pair.ResponseURL, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s\n", result.Pair.ResponseURL, jsonPath)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed\n", succeeded, failed)
	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d pairs failed", failed)
	}
	return nil
}
