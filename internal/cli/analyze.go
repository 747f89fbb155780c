package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/geoscope/internal/model"
	"github.com/ppiankov/geoscope/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	sourceArg   string
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	noRobots    bool
	lambdaDecay float64
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <response>",
	Short: "Analyze a response document against an optional source",
	Long: `Analyze scores a response document (URL or local file):
- Attribution: how many source words surface in the response, weighted
  by how early they appear (exponential positional decay)
- Rhetorical signals: authority language, statistics, citations,
  expert phrasing
- Content quality: length, readability, structure
- Recommendations: threshold-driven, ordered advisories

The response may be an http(s) URL, an HTML file or a markdown file.
The optional --source is the document the response is believed to draw
on; without it attribution metrics resolve to zero.

Example:
  geoscope analyze https://example.com/answer --source https://example.com/article
  geoscope analyze answer.md --source article.html --json report.json --md report.md
  geoscope analyze https://example.com --lambda 5 --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&sourceArg, "source", "", "source document (URL or file) to attribute against")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Geoscope/0.1 (+https://github.com/ppiankov/geoscope)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Scoring flags
	analyzeCmd.Flags().Float64Var(&lambdaDecay, "lambda", 10, "positional decay constant (must be positive)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Scoring.LambdaDecay = lambdaDecay
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			return nil, fmt.Errorf("unknown LLM provider: %q", llmProvider)
		}
	}

	return cfg, nil
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	response := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", response)
		if sourceArg != "" {
			fmt.Fprintf(os.Stderr, "Source:    %s\n", sourceArg)
		}
		fmt.Fprintf(os.Stderr, "Lambda:    %g\n\n", lambdaDecay)
	}

	var report *model.AnalysisReport
	switch {
	case isURL(response):
		if sourceArg != "" && !isURL(sourceArg) {
			return fmt.Errorf("--source must be a URL when the response is a URL")
		}
		report, err = p.AnalyzePair(ctx, sourceArg, response)
	default:
		if sourceArg != "" && isURL(sourceArg) {
			return fmt.Errorf("--source must be a file when the response is a file")
		}
		report, err = p.AnalyzeFiles(ctx, sourceArg, response)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Attributed %d source sentences\n", len(report.Attribution.SourcePositions))
		fmt.Fprintf(os.Stderr, "✓ Impression score: %.3f\n", report.Impression)
		fmt.Fprintf(os.Stderr, "✓ Generated %d recommendations\n\n", len(report.Recommendations))
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
