package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/output"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

func newTestServer(t *testing.T, runner RunFunc) *Server {
	t.Helper()
	dir := t.TempDir()
	s, err := New(Config{
		Port:       0,
		APIKey:     "test-key",
		UploadDir:  filepath.Join(dir, "uploads"),
		ResultPath: filepath.Join(dir, "matches.json"),
		Runner:     runner,
	})
	require.NoError(t, err)
	return s
}

func okRunner(summary *types.MatchRunSummary) RunFunc {
	return func(_ context.Context, _ pipeline.RunOptions) (*types.MatchRunSummary, error) {
		return summary, nil
	}
}

// multipartResume builds a multipart body with a resume file and form fields.
func multipartResume(t *testing.T, filename, location, keyword string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		fw, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("Jane Doe\nBackend engineer."))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("location", location))
	require.NoError(t, mw.WriteField("job_preference", keyword))
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandleUpload_Success(t *testing.T) {
	var gotOpts pipeline.RunOptions
	s := newTestServer(t, func(_ context.Context, opts pipeline.RunOptions) (*types.MatchRunSummary, error) {
		gotOpts = opts
		// The scratch copy must exist while the run is in flight.
		_, err := os.Stat(opts.ResumePath)
		require.NoError(t, err)
		return &types.MatchRunSummary{RunID: "run-1", MatchedJobs: 3, TopMatchScore: 85}, nil
	})

	body, contentType := multipartResume(t, "resume.txt", "Kathmandu", "software engineer")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary types.MatchRunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 85, summary.TopMatchScore)

	assert.Equal(t, "Kathmandu", gotOpts.Location)
	assert.Equal(t, "software engineer", gotOpts.Keyword)
	assert.Equal(t, "test-key", gotOpts.APIKey)

	// Scratch copy is cleaned up once the run completes.
	_, err := os.Stat(gotOpts.ResumePath)
	assert.True(t, os.IsNotExist(err))
}

func TestHandleUpload_MissingKeyword(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	body, contentType := multipartResume(t, "resume.txt", "Kathmandu", "")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request")
}

func TestHandleUpload_MissingFile(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	body, contentType := multipartResume(t, "", "", "engineer")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume file is required")
}

func TestHandleUpload_UnsupportedExtension(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	body, contentType := multipartResume(t, "resume.exe", "", "engineer")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported resume format")
}

func TestHandleUpload_RunnerFailure(t *testing.T) {
	s := newTestServer(t, func(_ context.Context, _ pipeline.RunOptions) (*types.MatchRunSummary, error) {
		return nil, errors.New("resume ingestion failed")
	})

	body, contentType := multipartResume(t, "resume.txt", "", "engineer")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "match run failed")
}

func TestHandleResults_NotFound(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleResults_ReturnsPersistedMatches(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	matches := []types.MatchedJob{
		{
			JobListing:   types.JobListing{JobTitle: "Software Engineer", Company: "Acme"},
			MatchDetails: types.MatchResult{MatchScore: 85},
		},
	}
	require.NoError(t, output.WriteMatches(s.resultPath, matches))

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []types.MatchedJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Software Engineer", got[0].JobTitle)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, okRunner(&types.MatchRunSummary{}))

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
