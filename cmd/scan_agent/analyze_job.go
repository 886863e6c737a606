package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-scanner/internal/pipeline"
	"github.com/spf13/cobra"
)

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job",
	Short: "Analyze a job description on its own",
	Long:  "Parse a job description and report its requirements, seniority, competitiveness, and culture signals without a resume.",
	RunE:  runAnalyzeJob,
}

var (
	analyzeJobFile       string
	analyzeJobOutputFile string
	analyzeJobAPIKey     string
	analyzeJobConfigPath string
)

func init() {
	analyzeJobCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to job description text file (required)")
	analyzeJobCmd.Flags().StringVarP(&analyzeJobOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	analyzeJobCmd.Flags().StringVar(&analyzeJobAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeJobCmd.Flags().StringVar(&analyzeJobConfigPath, "config", "", "Path to JSON config file")
	_ = analyzeJobCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeJobCmd)
}

func runAnalyzeJob(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(analyzeJobConfigPath)
	if err != nil {
		return err
	}
	if analyzeJobAPIKey != "" {
		cfg.APIKey = analyzeJobAPIKey
	}

	jobText, err := os.ReadFile(analyzeJobFile)
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
	}

	runner := pipeline.NewRunner(pipeline.Options{Client: client, CacheSize: cfg.CacheSize})

	result, err := runner.AnalyzeJob(ctx, string(jobText))
	if err != nil {
		return fmt.Errorf("analyze-job failed: %w", err)
	}

	return writeJSON(analyzeJobOutputFile, result)
}
