package types

import (
	"github.com/go-playground/validator/v10"
)

// MatchRequest represents the form fields submitted alongside a resume upload.
// The keyword drives both the search URL and the pre-match filter; location
// is optional and narrows the filter when present.
type MatchRequest struct {
	Location string `json:"location" validate:"omitempty,max=120"`
	Keyword  string `json:"job_preference" validate:"required,min=2,max=120"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MatchRunSummary is returned to the caller after a pipeline run.
type MatchRunSummary struct {
	RunID         string `json:"run_id"`
	ScrapedJobs   int    `json:"scraped_jobs"`
	FilteredJobs  int    `json:"filtered_jobs"`
	MatchedJobs   int    `json:"matched_jobs"`
	ResultPath    string `json:"result_path"`
	TopMatchScore int    `json:"top_match_score"`
}
