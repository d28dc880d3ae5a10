// Package pipeline provides the high-level orchestration for the resume
// matching process: ingest resume, scrape job pages, extract, filter, score,
// persist.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/output"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// ScrapeFunc renders a URL and returns its HTML. The default implementation
// drives a headless browser; tests substitute a canned one.
type ScrapeFunc func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)

// Step names reported through OnProgress.
const (
	StepResumeIngest  = "resume_ingest"
	StepResumeProfile = "resume_profile"
	StepScrape        = "scrape"
	StepExtract       = "extract"
	StepFilter        = "filter"
	StepMatch         = "match"
	StepPersist       = "persist"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath string

	// SearchURLs are the job-search pages to scrape. When empty, a single
	// search URL is built from Location and Keyword.
	SearchURLs []string
	Location   string
	Keyword    string

	APIKey     string
	OutputPath string
	Verbose    bool

	// Client overrides the LLM client; one is built from APIKey when nil.
	Client llm.Client
	// Scrape overrides the page renderer.
	Scrape ScrapeFunc

	OnProgress ProgressCallback
}

// BuildSearchURL constructs a LinkedIn job-search URL from the keyword and
// optional location.
func BuildSearchURL(keyword, location string) string {
	q := url.Values{}
	q.Set("keywords", keyword)
	if location != "" {
		q.Set("location", location)
	}
	return "https://www.linkedin.com/jobs/search/?" + q.Encode()
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			Content: content,
		})
	}
}

// RunPipeline executes one end-to-end match run. Steps run strictly in
// sequence. A resume that cannot be ingested or extracted fails the run;
// scrape and per-chunk extraction failures only shrink the candidate pool.
func RunPipeline(ctx context.Context, opts RunOptions) (*types.MatchRunSummary, error) {
	runID := uuid.New().String()
	printer := observability.NewPrinter(os.Stdout)

	client := opts.Client
	if client == nil {
		var err error
		client, err = llm.NewClient(ctx, llm.DefaultGeminiConfig(), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	scrape := opts.Scrape
	if scrape == nil {
		scrape = fetch.Scrape
	}

	// Step 1: resume text. Fails closed; matching without a resume is
	// meaningless.
	fmt.Printf("Step 1/6: Extracting text from resume: %s...\n", opts.ResumePath)
	resumeText, err := ingestion.ExtractText(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("resume ingestion failed: %w", err)
	}
	emitProgress(&opts, runID, StepResumeIngest,
		fmt.Sprintf("Extracted %d characters of resume text", len(resumeText)), nil)

	fmt.Printf("Step 2/6: Extracting structured resume profile...\n")
	profile, err := extraction.ExtractResume(ctx, client, resumeText)
	if err != nil {
		return nil, fmt.Errorf("resume extraction failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintResumeProfile(profile)
	}
	emitProgress(&opts, runID, StepResumeProfile,
		fmt.Sprintf("Extracted resume profile for %s", profile.FullName), profile)

	// Step 3: scrape and extract job listings. One URL failing or one chunk
	// coming back unparseable never aborts the run.
	searchURLs := opts.SearchURLs
	if len(searchURLs) == 0 {
		searchURLs = []string{BuildSearchURL(opts.Keyword, opts.Location)}
	}

	var jobs []types.JobListing
	for _, searchURL := range searchURLs {
		fmt.Printf("Step 3/6: Scraping job listings from %s...\n", searchURL)
		html, err := scrape(ctx, searchURL, fetch.DefaultTimeout, opts.Verbose)
		if err != nil {
			fmt.Printf("Warning: scrape failed for %s: %v\n", searchURL, err)
			continue
		}
		emitProgress(&opts, runID, StepScrape,
			fmt.Sprintf("Scraped %d bytes from %s", len(html), searchURL), nil)

		content := fetch.CleanBodyContent(html)
		chunks := fetch.SplitDOMContent(content, fetch.DefaultMaxChunkChars)

		fmt.Printf("Step 4/6: Extracting jobs from %d content chunks...\n", len(chunks))
		for _, chunk := range chunks {
			listing, err := extraction.ExtractJob(ctx, client, chunk)
			if err != nil {
				fmt.Printf("Warning: chunk extraction failed: %v\n", err)
				continue
			}
			if listing == nil {
				continue
			}
			if opts.Verbose {
				printer.PrintJobListing(listing)
			}
			jobs = append(jobs, *listing)
		}
	}
	emitProgress(&opts, runID, StepExtract,
		fmt.Sprintf("Extracted %d job listings", len(jobs)), nil)

	summary := &types.MatchRunSummary{
		RunID:       runID,
		ScrapedJobs: len(jobs),
	}

	// Step 4: filter down to the listings worth an expensive match call.
	filtered := matching.FilterJobs(jobs, opts.Location, opts.Keyword)
	summary.FilteredJobs = len(filtered)
	emitProgress(&opts, runID, StepFilter,
		fmt.Sprintf("Filtered to %d relevant listings", len(filtered)), nil)

	if len(filtered) == 0 {
		fmt.Printf("No job listings survived filtering; nothing to match.\n")
		return summary, nil
	}

	// Step 5: score each surviving job against the resume.
	fmt.Printf("Step 5/6: Matching resume against %d jobs...\n", len(filtered))
	matched, scored := matching.MatchResumeToJobs(ctx, client, profile, filtered)
	if opts.Verbose {
		printer.PrintRankedMatches(matched)
	}

	// When not a single call got through, fall back to persisting the
	// filtered listings so the user still sees what was found. A run where
	// the model legitimately scores everything 0 keeps its real results.
	if scored == 0 {
		fmt.Printf("Warning: no job could be scored; persisting filtered listings instead.\n")
		matched = asUnscored(filtered)
	}

	if len(matched) > matching.MaxFilteredJobs {
		matched = matched[:matching.MaxFilteredJobs]
	}
	summary.MatchedJobs = len(matched)
	summary.TopMatchScore = matched[0].MatchDetails.MatchScore
	emitProgress(&opts, runID, StepMatch,
		fmt.Sprintf("Matched %d jobs, top score %d", len(matched), summary.TopMatchScore), matched)

	// Step 6: persist.
	resultPath := opts.OutputPath
	if resultPath == "" {
		resultPath = output.DefaultResultPath
	}
	fmt.Printf("Step 6/6: Writing results to %s...\n", resultPath)
	if err := output.WriteMatches(resultPath, matched); err != nil {
		return nil, fmt.Errorf("persisting results failed: %w", err)
	}
	summary.ResultPath = resultPath
	emitProgress(&opts, runID, StepPersist,
		fmt.Sprintf("Wrote %d matched jobs to %s", len(matched), resultPath), nil)

	fmt.Printf("Done! Results stored in %s.\n", resultPath)
	return summary, nil
}

// asUnscored wraps filtered listings with placeholder match details so the
// result file keeps its shape.
func asUnscored(jobs []types.JobListing) []types.MatchedJob {
	matched := make([]types.MatchedJob, 0, len(jobs))
	for _, job := range jobs {
		matched = append(matched, types.MatchedJob{
			JobListing:   job,
			MatchDetails: types.PlaceholderMatchResult("Matching unavailable.", "Listing passed filtering but was not scored."),
		})
	}
	return matched
}
