package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aiready/aiready/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// NameCheck is one identifier checked against a language's conventions.
type NameCheck struct {
	Identifier string              `json:"identifier"`
	Language   domain.Language     `json:"language"`
	Kind       domain.SymbolKind   `json:"kind"`
	Issue      *domain.NamingIssue `json:"issue,omitempty"`
}

// RenderNameChecks renders naming results, one line per identifier.
func RenderNameChecks(checks []NameCheck) string {
	var b strings.Builder

	failed := 0
	for _, c := range checks {
		if c.Issue != nil {
			failed++
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n\n",
		sectionHeaderStyle.Render("Naming"),
		dimStyle.Render(fmt.Sprintf("(%d checked, %d flagged)", len(checks), failed)),
	)

	for _, c := range checks {
		label := fmt.Sprintf("%s %s", c.Language, c.Kind)
		if c.Issue == nil {
			fmt.Fprintf(&b, "    %s %s  %s\n", passStyle.Render("●"), c.Identifier, faintStyle.Render(label))
			continue
		}
		fmt.Fprintf(&b, "    %s %s  %s  %s\n",
			severityTag(c.Issue.Severity),
			c.Identifier,
			faintStyle.Render(label),
			dimStyle.Render(c.Issue.Kind),
		)
		fmt.Fprintf(&b, "          %s\n", hintStyle.Render("→ "+suggestionText(c.Issue.Kind, c.Issue.Suggestion)))
	}

	b.WriteString("\n")
	return b.String()
}
