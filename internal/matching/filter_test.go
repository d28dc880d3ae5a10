package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestFilterJobs_LocationAndKeyword(t *testing.T) {
	jobs := []types.JobListing{
		{
			JobTitle:    "Software Engineer",
			Company:     "Acme",
			Location:    "Kathmandu, Nepal",
			Description: "Backend services in Go",
		},
		{
			JobTitle: "Marketing Manager",
			Location: "Kathmandu, Nepal",
		},
		{
			JobTitle: "Software Engineer",
			Location: "Berlin, Germany",
		},
	}

	filtered := FilterJobs(jobs, "kathmandu", "engineer")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Software Engineer", filtered[0].JobTitle)
	assert.Equal(t, "Kathmandu, Nepal", filtered[0].Location)
}

func TestFilterJobs_KeywordInRequirements(t *testing.T) {
	jobs := []types.JobListing{
		{
			JobTitle:     "Backend Developer",
			Location:     "Remote",
			Description:  "Build APIs",
			Requirements: []string{"3 years as a software engineer"},
		},
	}

	filtered := FilterJobs(jobs, "", "Engineer")
	assert.Len(t, filtered, 1)
}

func TestFilterJobs_EmptyLocationMatchesAll(t *testing.T) {
	jobs := []types.JobListing{
		{JobTitle: "Go Developer", Location: "Lagos"},
		{JobTitle: "Go Developer", Location: ""},
	}

	filtered := FilterJobs(jobs, "", "developer")
	assert.Len(t, filtered, 2)
}

func TestFilterJobs_NoMatches(t *testing.T) {
	jobs := []types.JobListing{
		{JobTitle: "Chef", Location: "Paris", Description: "Cooking"},
	}

	filtered := FilterJobs(jobs, "paris", "engineer")
	assert.Empty(t, filtered)
}

func TestFilterJobs_CapsAtMaxAndPreservesOrder(t *testing.T) {
	var jobs []types.JobListing
	for i := 0; i < 8; i++ {
		jobs = append(jobs, types.JobListing{
			JobTitle: "Engineer",
			Company:  string(rune('A' + i)),
			Location: "Remote",
		})
	}

	filtered := FilterJobs(jobs, "remote", "engineer")
	require.Len(t, filtered, MaxFilteredJobs)
	for i := 0; i < MaxFilteredJobs; i++ {
		assert.Equal(t, string(rune('A'+i)), filtered[i].Company)
	}
}

func TestFilterJobs_Idempotent(t *testing.T) {
	jobs := []types.JobListing{
		{JobTitle: "Software Engineer", Location: "Kathmandu, Nepal"},
		{JobTitle: "Data Engineer", Location: "Kathmandu, Nepal"},
	}

	once := FilterJobs(jobs, "kathmandu", "engineer")
	twice := FilterJobs(once, "kathmandu", "engineer")
	assert.Equal(t, once, twice)
}

func TestFilterJobs_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterJobs(nil, "kathmandu", "engineer"))
}
