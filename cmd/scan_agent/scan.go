package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-scanner/internal/llm"
	"github.com/jonathan/resume-scanner/internal/observability"
	"github.com/jonathan/resume-scanner/internal/pipeline"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a resume against a job description",
	Long:  "Run the full compatibility pipeline over a resume and a job description and print the scan result as JSON.",
	RunE:  runScan,
}

var (
	scanResumeFile string
	scanJobFile    string
	scanOutputFile string
	scanAPIKey     string
	scanConfigPath string
	scanVerbose    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanResumeFile, "resume", "r", "", "Path to resume text file (required)")
	scanCmd.Flags().StringVarP(&scanJobFile, "job", "j", "", "Path to job description text file (required)")
	scanCmd.Flags().StringVarP(&scanOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	scanCmd.Flags().StringVar(&scanAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "Path to JSON config file")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print formatted stage and score summaries")
	_ = scanCmd.MarkFlagRequired("resume")
	_ = scanCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(scanConfigPath)
	if err != nil {
		return err
	}
	if scanAPIKey != "" {
		cfg.APIKey = scanAPIKey
	}
	if scanVerbose {
		cfg.Verbose = true
	}

	resumeText, err := os.ReadFile(scanResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(scanJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	ctx := context.Background()

	client, err := newClient(ctx, cfg.APIKey, time.Duration(cfg.RequestTimeout)*time.Second)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no API key set, running in regex-basic mode")
	}

	opts := pipeline.Options{Client: client, CacheSize: cfg.CacheSize}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", event.Status, event.Stage)
		}
	}
	runner := pipeline.NewRunner(opts)

	label := filepath.Base(scanResumeFile)
	result, err := runner.Scan(ctx, string(resumeText), string(jobText), label)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintStages(result)
		printer.PrintScore(result.Score)
		printer.PrintMatch(result.Match)
		printer.PrintGaps(result.Gaps)
		printer.PrintRewrites(result.Rewrites)
	}

	return writeJSON(scanOutputFile, result)
}

// newClient builds the Gemini client, or returns nil when no key is set.
func newClient(ctx context.Context, apiKey string, timeout time.Duration) (llm.Client, error) {
	if apiKey == "" {
		return nil, nil
	}
	llmCfg := llm.DefaultGeminiConfig()
	if timeout > 0 {
		llmCfg = llmCfg.WithTimeout(timeout)
	}
	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// writeJSON marshals v with indentation to the given path, or stdout when
// path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return err
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
