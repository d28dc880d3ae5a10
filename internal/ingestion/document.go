// Package ingestion extracts plain text from uploaded resume documents.
package ingestion

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// allowedExtensions is the upload allow-list. Matching the upload gate, not
// the extractor: .doc and .rtf are accepted at the form boundary and then
// rejected here with an ExtractionError, which surfaces as the user-visible
// resume-parse failure.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".txt":  true,
}

// AllowedExtension reports whether filename carries an accepted extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ExtractionError reports that no text could be pulled from a document.
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractText reads a resume document and returns its plain text, dispatching
// on file extension. Returns an ExtractionError when the format is
// unsupported or the document yields no text.
func ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text = string(data)
	default:
		return "", &ExtractionError{Path: path, Message: "unsupported document format"}
	}
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to parse document", Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &ExtractionError{Path: path, Message: "document contains no extractable text"}
	}
	return text, nil
}

// extractPDFText pulls text from every page, tolerating per-page failures:
// a page that cannot be decoded contributes nothing rather than aborting
// the document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[INGEST] skipping unreadable PDF page %d: %v", i, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return doc.Editable().GetContent(), nil
}

// CleanText normalizes line endings, trims each line, and collapses runs of
// blank lines, keeping the result compact for prompt embedding.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
