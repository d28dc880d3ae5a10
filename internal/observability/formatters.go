// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeProfile outputs a human-readable summary of the extracted resume.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", profile.Email))
	sb.WriteString("\n")

	if len(profile.TechnicalSkills) > 0 {
		skills := strings.Join(profile.TechnicalSkills, ", ")
		if len(skills) > 50 {
			skills = skills[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	if len(profile.WorkExperience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(profile.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := profile.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s", exp.Position, exp.Company))
			if exp.Duration != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			sb.WriteString("\n")
		}
		if len(profile.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.WorkExperience)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobListing outputs a single extracted job listing.
func (p *Printer) PrintJobListing(job *types.JobListing) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.JobTitle))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))

	if len(job.SkillsRequired) > 0 {
		skills := strings.Join(job.SkillsRequired, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", skills))
	}

	if len(job.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		count := min(len(job.Requirements), 3)
		for i := 0; i < count; i++ {
			req := job.Requirements[i]
			if len(req) > 50 {
				req = req[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", req))
		}
		if len(job.Requirements) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Requirements)-3))
		}
	}

	p.printBox("EXTRACTED JOB LISTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedMatches outputs the scored jobs in rank order.
func (p *Printer) PrintRankedMatches(matches []types.MatchedJob) {
	if len(matches) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHED JOBS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total jobs scored: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s at %s\n", i+1, m.JobTitle, m.Company))
		sb.WriteString(fmt.Sprintf("    Score: %d/100\n", m.MatchDetails.MatchScore))
		if len(m.MatchDetails.MatchedSkills) > 0 {
			skills := strings.Join(m.MatchDetails.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(matches)-maxItemsToShow))
	}

	p.printBox("TOP MATCHED JOBS", sb.String())
}
