// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/gigforge/gigmatch/internal/types"
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

// PrintRequiredSkills outputs the skill requirements the candidates are
// evaluated against.
func (p *Printer) PrintRequiredSkills(required []types.RequiredSkill) {
	if len(required) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Required skills: %d\n\n", len(required)))

	count := min(len(required), maxItemsToShow)
	for i := 0; i < count; i++ {
		skill := required[i]
		sb.WriteString(fmt.Sprintf("  • %s", skill.Name))
		if skill.Level != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", skill.Level))
		}
		sb.WriteString("\n")
	}
	if len(required) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(required)-maxItemsToShow))
	}

	p.printBox("SKILL REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResults outputs candidates ranked by match score with their
// matched skills.
func (p *Printer) PrintRankedResults(results []types.MatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates evaluated: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.CandidateID))
		sb.WriteString(fmt.Sprintf("    Score: %d%%\n", result.MatchScore))
		if len(result.MatchedSkills) > 0 {
			skills := strings.Join(result.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(results)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}
