package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MatchResumeToJobs scores each job against the resume profile with one
// model call per job, sequentially. A job whose call or parse fails gets a
// placeholder score-0 result and the batch continues; one bad job never
// aborts the run. The returned list is sorted by match_score descending with
// a stable sort, so equal scores keep their original relative order.
//
// scored counts the jobs whose model call succeeded. A legitimate zero score
// counts as scored; only failed or cancelled calls do not. Callers use it to
// tell "the model rated everything poorly" apart from "no call got through".
func MatchResumeToJobs(ctx context.Context, client llm.Client, profile *types.ResumeProfile, jobs []types.JobListing) (matched []types.MatchedJob, scored int) {
	matched = make([]types.MatchedJob, 0, len(jobs))

	for _, job := range jobs {
		// Stop scoring when the caller gives up; remaining jobs still get
		// placeholders so the output shape is intact.
		select {
		case <-ctx.Done():
			matched = append(matched, types.MatchedJob{
				JobListing:   job,
				MatchDetails: types.PlaceholderMatchResult("Matching cancelled.", ctx.Err().Error()),
			})
			continue
		default:
		}

		log.Printf("[MATCH] scoring job: %s", jobTitleOrUnknown(&job))

		result, err := scoreJob(ctx, client, profile, &job)
		if err != nil {
			log.Printf("[MATCH] scoring failed for %q: %v", jobTitleOrUnknown(&job), err)
			result = types.PlaceholderMatchResult("Error during matching.", err.Error())
		} else {
			scored++
		}

		matched = append(matched, types.MatchedJob{JobListing: job, MatchDetails: result})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchDetails.MatchScore > matched[j].MatchDetails.MatchScore
	})

	return matched, scored
}

// scoreJob issues the match call for a single resume/job pair.
func scoreJob(ctx context.Context, client llm.Client, profile *types.ResumeProfile, job *types.JobListing) (types.MatchResult, error) {
	resumeJSON, err := json.Marshal(profile)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("failed to serialize resume profile: %w", err)
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("failed to serialize job listing: %w", err)
	}

	template := prompts.MustGet("matching.json", "score-resume-job-match")
	prompt := prompts.Format(template, map[string]string{
		"ResumeDetails": string(resumeJSON),
		"JobListing":    string(jobJSON),
	})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return types.MatchResult{}, fmt.Errorf("match call failed: %w", err)
	}

	var result types.MatchResult
	if err := llm.SanitizeInto(response, &result); err != nil {
		return types.MatchResult{}, fmt.Errorf("could not parse match result: %w", err)
	}

	result.FillDefaults()
	if err := schemas.Validate(schemas.MatchResult, result); err != nil {
		return types.MatchResult{}, fmt.Errorf("match result failed schema validation: %w", err)
	}

	return result, nil
}

func jobTitleOrUnknown(job *types.JobListing) string {
	if job.JobTitle == "" {
		return "Unknown Title"
	}
	return job.JobTitle
}
