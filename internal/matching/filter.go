// Package matching filters scraped job listings and scores them against a
// resume profile.
package matching

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// MaxFilteredJobs caps how many listings reach the per-job match calls,
// which are the expensive part of the run.
const MaxFilteredJobs = 5

// FilterJobs keeps listings whose location contains location (empty matches
// everything) and whose title, description, or any requirement contains
// keyword. Matching is plain case-insensitive substring; no stemming or
// fuzziness. The result preserves original order and is truncated to
// MaxFilteredJobs, so filtering an already-filtered list with the same
// criteria returns it unchanged.
func FilterJobs(jobs []types.JobListing, location, keyword string) []types.JobListing {
	location = strings.ToLower(strings.TrimSpace(location))
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	var filtered []types.JobListing
	for _, job := range jobs {
		if !matchesLocation(&job, location) || !matchesKeyword(&job, keyword) {
			continue
		}
		filtered = append(filtered, job)
		if len(filtered) == MaxFilteredJobs {
			break
		}
	}
	return filtered
}

func matchesLocation(job *types.JobListing, location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Location), location)
}

func matchesKeyword(job *types.JobListing, keyword string) bool {
	if keyword == "" {
		return true
	}
	if strings.Contains(strings.ToLower(job.JobTitle), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Description), keyword) {
		return true
	}
	for _, req := range job.Requirements {
		if strings.Contains(strings.ToLower(req), keyword) {
			return true
		}
	}
	return false
}
