package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func sampleMatches() []types.MatchedJob {
	return []types.MatchedJob{
		{
			JobListing: types.JobListing{
				JobTitle: "Software Engineer",
				Company:  "Acme",
				Location: "Kathmandu, Nepal",
			},
			MatchDetails: types.MatchResult{
				MatchScore:     85,
				MatchedSkills:  []string{"Go"},
				MatchReasoning: "Strong overlap",
			},
		},
		{
			JobListing: types.JobListing{
				JobTitle: "Data Engineer",
				Company:  "Beta",
			},
			MatchDetails: types.MatchResult{MatchScore: 60},
		},
	}
}

func TestWriteAndReadMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "matches.json")

	require.NoError(t, WriteMatches(path, sampleMatches()))

	got, err := ReadMatches(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Software Engineer", got[0].JobTitle)
	assert.Equal(t, 85, got[0].MatchDetails.MatchScore)
	assert.Equal(t, "Beta", got[1].Company)
}

func TestWriteMatches_OverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")

	require.NoError(t, WriteMatches(path, sampleMatches()))
	require.NoError(t, WriteMatches(path, sampleMatches()[:1]))

	got, err := ReadMatches(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteMatches_EmptySliceWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.json")

	require.NoError(t, WriteMatches(path, []types.MatchedJob{}))

	got, err := ReadMatches(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadMatches_MissingFile(t *testing.T) {
	_, err := ReadMatches(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadMatches_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := ReadMatches(path)
	assert.Error(t, err)
}
