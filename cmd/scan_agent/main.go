// Package main provides the entry point for the Resume Scanner CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scan_agent",
	Short: "Resume Scanner CLI and HTTP API Server",
	Long:  "Resume Scanner analyzes resume-to-job compatibility: ATS scoring, keyword matching, skill gap analysis, and rewrite suggestions, available as a CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
