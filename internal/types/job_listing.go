// Package types defines the structured records passed between pipeline stages.
package types

// JobListing is a single job posting extracted from one chunk of scraped
// page text. Listings are not deduplicated across chunks.
type JobListing struct {
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	SkillsRequired  []string `json:"skills_required"`
	ExperienceLevel string   `json:"experience_level"`
	SalaryRange     string   `json:"salary_range"`
}

// FillDefaults replaces nil slices with empty ones so serialized output
// always carries every key. Called at the extraction boundary; downstream
// code never branches on missing fields.
func (j *JobListing) FillDefaults() {
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.SkillsRequired == nil {
		j.SkillsRequired = []string{}
	}
}

// IsEmpty reports whether extraction produced no usable content.
// Chunks of navigation chrome routinely yield fully blank listings.
func (j *JobListing) IsEmpty() bool {
	return j.JobTitle == "" && j.Company == "" && j.Description == "" &&
		len(j.Requirements) == 0 && len(j.SkillsRequired) == 0
}

// MatchResult is the model's assessment of one resume/job pair.
type MatchResult struct {
	MatchScore             int      `json:"match_score"`
	MatchedSkills          []string `json:"matched_skills"`
	MissingSkills          []string `json:"missing_skills"`
	MatchReasoning         string   `json:"match_reasoning"`
	MatchedExperience      []string `json:"matched_experience"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	AdditionalComments     string   `json:"additional_comments"`
}

// FillDefaults replaces nil slices with empty ones and clamps the score
// to the 0-100 range the prompt requests.
func (m *MatchResult) FillDefaults() {
	if m.MatchedSkills == nil {
		m.MatchedSkills = []string{}
	}
	if m.MissingSkills == nil {
		m.MissingSkills = []string{}
	}
	if m.MatchedExperience == nil {
		m.MatchedExperience = []string{}
	}
	if m.ImprovementSuggestions == nil {
		m.ImprovementSuggestions = []string{}
	}
	if m.MatchScore < 0 {
		m.MatchScore = 0
	}
	if m.MatchScore > 100 {
		m.MatchScore = 100
	}
}

// PlaceholderMatchResult returns the score-0 result attached to a job when
// matching fails. Every job in the output carries match_details; ranking and
// display never see a missing key.
func PlaceholderMatchResult(reasoning, comments string) MatchResult {
	return MatchResult{
		MatchScore:             0,
		MatchedSkills:          []string{},
		MissingSkills:          []string{},
		MatchReasoning:         reasoning,
		MatchedExperience:      []string{},
		ImprovementSuggestions: []string{},
		AdditionalComments:     comments,
	}
}

// MatchedJob is a job listing with its match assessment merged in.
type MatchedJob struct {
	JobListing
	MatchDetails MatchResult `json:"match_details"`
}
