// Package main provides the entry point for the Resume Matcher agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcher_agent",
	Short: "AI Resume Matcher",
	Long:  "Resume Matcher scrapes job-search pages, extracts structured listings, and scores them against an uploaded resume to surface the top matching jobs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
