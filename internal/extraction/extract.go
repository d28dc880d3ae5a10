// Package extraction turns unstructured text into structured records via
// LLM calls: job listings from scraped page chunks, resume profiles from
// uploaded documents.
package extraction

import (
	"context"
	"log"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ExtractJob extracts a structured JobListing from one chunk of cleaned page
// text. A nil listing with nil error means the chunk held no job content
// (navigation chrome, footers); an error means the chunk should be skipped,
// never that the whole scrape should abort.
func ExtractJob(ctx context.Context, client llm.Client, chunk string) (*types.JobListing, error) {
	template := prompts.MustGet("extraction.json", "extract-job-listing")
	prompt := prompts.Format(template, map[string]string{
		"JobContent": chunk,
	})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "job extraction call failed", Cause: err}
	}

	var listing types.JobListing
	if err := llm.SanitizeInto(response, &listing); err != nil {
		log.Printf("[EXTRACT] unparseable job listing response: %v", err)
		return nil, &ParseError{
			Message:     "could not parse job listing JSON",
			RawResponse: response,
			Cause:       err,
		}
	}

	listing.FillDefaults()
	if listing.IsEmpty() {
		return nil, nil
	}

	if err := schemas.Validate(schemas.JobListing, listing); err != nil {
		return nil, &ParseError{
			Message:     "job listing failed schema validation",
			RawResponse: response,
			Cause:       err,
		}
	}

	return &listing, nil
}

// ExtractResume extracts a ResumeProfile from resume document text. Unlike
// job extraction, a failure here is terminal for the run: the pipeline fails
// closed rather than matching without a resume.
func ExtractResume(ctx context.Context, client llm.Client, resumeText string) (*types.ResumeProfile, error) {
	template := prompts.MustGet("extraction.json", "extract-resume-profile")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	// Resume parsing happens once per run; the standard tier buys schema
	// adherence across the nested experience and project lists.
	response, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume extraction call failed", Cause: err}
	}

	var profile types.ResumeProfile
	if err := llm.SanitizeInto(response, &profile); err != nil {
		return nil, &ParseError{
			Message:     "could not parse resume profile JSON",
			RawResponse: response,
			Cause:       err,
		}
	}

	profile.FillDefaults()
	if profile.IsEmpty() {
		return nil, &ParseError{
			Message:     "model returned an empty resume profile",
			RawResponse: response,
		}
	}

	if err := schemas.Validate(schemas.ResumeProfile, profile); err != nil {
		return nil, &ParseError{
			Message:     "resume profile failed schema validation",
			RawResponse: response,
			Cause:       err,
		}
	}

	return &profile, nil
}
