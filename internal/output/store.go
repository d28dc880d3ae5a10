// Package output persists match results to disk as a single JSON document.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultResultPath is where match runs land unless the caller overrides it.
// Each run overwrites the previous one; history is out of scope.
const DefaultResultPath = "output/top_5_matched_jobs.json"

// WriteMatches writes the matched jobs to path, creating parent directories
// as needed. The file is fully rewritten on every call.
func WriteMatches(path string, matches []types.MatchedJob) error {
	if path == "" {
		path = DefaultResultPath
	}

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize matches: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results to %s: %w", path, err)
	}

	return nil
}

// ReadMatches loads a previously written result file. A missing file is an
// error; callers distinguish it with os.IsNotExist on the unwrapped cause.
func ReadMatches(path string) ([]types.MatchedJob, error) {
	if path == "" {
		path = DefaultResultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results from %s: %w", path, err)
	}

	var matches []types.MatchedJob
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}

	return matches, nil
}
