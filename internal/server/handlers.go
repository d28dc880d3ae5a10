package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/output"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxUploadBytes caps the multipart request body. Resumes are small; anything
// past a few megabytes is not a resume.
const maxUploadBytes = 5 << 20

// handleUpload accepts a resume document plus search criteria and runs one
// match end to end. The request blocks until the run completes; the uploaded
// file is a scratch copy and is removed on every path.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "resume upload exceeds the 5 MB limit")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := types.MatchRequest{
		Location: r.FormValue("location"),
		Keyword:  r.FormValue("job_preference"),
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !ingestion.AllowedExtension(header.Filename) {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported resume format: %s", filepath.Ext(header.Filename)))
		return
	}

	scratchPath, err := s.saveScratchCopy(file, header.Filename)
	if err != nil {
		log.Printf("Error saving uploaded resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to store uploaded resume")
		return
	}
	defer func() {
		if err := os.Remove(scratchPath); err != nil {
			log.Printf("Error removing scratch resume %s: %v", scratchPath, err)
		}
	}()

	summary, err := s.runner(r.Context(), pipeline.RunOptions{
		ResumePath: scratchPath,
		Location:   req.Location,
		Keyword:    req.Keyword,
		APIKey:     s.apiKey,
		OutputPath: s.resultPath,
	})
	if err != nil {
		log.Printf("Match run failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("match run failed: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}

// saveScratchCopy writes the uploaded resume under a random name in the
// upload directory, keeping the original extension for the extractor.
func (s *Server) saveScratchCopy(file io.Reader, filename string) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}

	return path, nil
}

// handleResults returns the most recently persisted match results.
func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	matches, err := output.ReadMatches(s.resultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.errorResponse(w, http.StatusNotFound, "no match results available yet")
			return
		}
		log.Printf("Error reading results: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to read match results")
		return
	}

	s.jsonResponse(w, http.StatusOK, matches)
}
