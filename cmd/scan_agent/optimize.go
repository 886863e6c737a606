package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-scanner/internal/pipeline"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Generate rewrite suggestions for a resume",
	Long:  "Rewrite resume sections against a job description and report the projected score change.",
	RunE:  runOptimize,
}

var (
	optimizeResumeFile string
	optimizeJobFile    string
	optimizeOutputFile string
	optimizeType       string
	optimizeAPIKey     string
	optimizeConfigPath string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeResumeFile, "resume", "r", "", "Path to resume text file (required)")
	optimizeCmd.Flags().StringVarP(&optimizeJobFile, "job", "j", "", "Path to job description text file (required)")
	optimizeCmd.Flags().StringVarP(&optimizeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	optimizeCmd.Flags().StringVarP(&optimizeType, "type", "t", "full", "Optimization type: full or a section name (summary, experience, skills, education, projects)")
	optimizeCmd.Flags().StringVar(&optimizeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	optimizeCmd.Flags().StringVar(&optimizeConfigPath, "config", "", "Path to JSON config file")
	_ = optimizeCmd.MarkFlagRequired("resume")
	_ = optimizeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(optimizeConfigPath)
	if err != nil {
		return err
	}
	if optimizeAPIKey != "" {
		cfg.APIKey = optimizeAPIKey
	}

	resumeText, err := os.ReadFile(optimizeResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(optimizeJobFile)
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
		fmt.Fprintln(os.Stderr, "Warning: no API key set, rewrite suggestions require an LLM and will be empty")
	}

	runner := pipeline.NewRunner(pipeline.Options{Client: client, CacheSize: cfg.CacheSize})

	result, err := runner.Optimize(ctx, string(resumeText), string(jobText), optimizeType)
	if err != nil {
		return fmt.Errorf("optimize failed: %w", err)
	}

	return writeJSON(optimizeOutputFile, result)
}
