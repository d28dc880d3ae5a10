package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/output"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run the full resume matching pipeline end-to-end",
	Long: `Orchestrates the entire matching process: resume ingestion -> scraping -> extraction -> filtering -> scoring -> persistence.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMatchCmd,
}

var (
	matchConfigPath string
	matchResume     string
	matchSearchURLs []string
	matchLocation   string
	matchKeyword    string
	matchOutput     string
	matchAPIKey     string
	matchVerbose    bool
)

func init() {
	// Config file flag (processed first)
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume document (.pdf, .docx, .txt)")
	matchCmd.Flags().StringSliceVar(&matchSearchURLs, "search-url", nil, "Job-search page URL to scrape (repeatable; built from keyword/location when omitted)")
	matchCmd.Flags().StringVarP(&matchLocation, "location", "l", "", "Location filter (optional)")
	matchCmd.Flags().StringVarP(&matchKeyword, "keyword", "k", "", "Job preference keyword")
	matchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Output path for matched jobs JSON")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(matchCmd)
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if matchConfigPath != "" {
		loadedCfg, err := config.LoadConfig(matchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if matchVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", matchConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = matchResume
	}
	if cmd.Flags().Changed("search-url") {
		cfg.SearchURLs = matchSearchURLs
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = matchLocation
	}
	if cmd.Flags().Changed("keyword") {
		cfg.Keyword = matchKeyword
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = matchOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Output: output.DefaultResultPath,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Keyword == "" && len(cfg.SearchURLs) == 0 {
		return fmt.Errorf("--keyword or --search-url must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	summary, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		ResumePath: cfg.Resume,
		SearchURLs: cfg.SearchURLs,
		Location:   cfg.Location,
		Keyword:    cfg.Keyword,
		APIKey:     cfg.APIKey,
		OutputPath: cfg.Output,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d scraped, %d filtered, %d matched (top score %d)\n",
		summary.RunID, summary.ScrapedJobs, summary.FilteredJobs, summary.MatchedJobs, summary.TopMatchScore)
	return nil
}
