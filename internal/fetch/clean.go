package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxChunkChars is the chunk size budget for LLM extraction input.
const DefaultMaxChunkChars = 2000

// CleanBodyContent parses HTML and returns the visible text of the <body>
// element (or the whole document when no body is present), one text node per
// line, whitespace-trimmed. Script, style, and noscript content is dropped.
func CleanBodyContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return cleanWhitespace(root.Text())
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// SplitDOMContent splits cleaned page text into chunks of at most maxChars,
// accumulating whole newline-delimited lines greedily. A chunk closes when
// the next line would overflow it, so a chunk can run well under maxChars
// when the following line is large; a single line longer than maxChars
// becomes its own chunk. Concatenating the chunks (newlines reinserted)
// reproduces the input.
func SplitDOMContent(content string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	var chunks []string
	var current strings.Builder

	for _, line := range lines {
		if current.Len() > 0 && current.Len()+len(line)+1 > maxChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
