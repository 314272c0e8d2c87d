package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aiready/aiready/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	lime      = lipgloss.Color("#A3E635")
	orange    = lipgloss.Color("#FB923C")
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	ratingColors = map[domain.Rating]lipgloss.Color{
		domain.RatingMinimal:  success,
		domain.RatingLow:      lime,
		domain.RatingModerate: warning,
		domain.RatingHigh:     orange,
		domain.RatingSevere:   danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	critTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	majorTagStyle = lipgloss.NewStyle().Foreground(orange).Bold(true)
	minorTagStyle = lipgloss.NewStyle().Foreground(warning)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// MaxIssues caps how many issues RenderReport lists.
const MaxIssues = 40

var signalLabels = map[string]string{
	domain.SignalImplicitSideEffects: "implicit side effects",
	domain.SignalDeepCallbacks:       "deep callbacks",
	domain.SignalBooleanTraps:        "boolean traps",
	domain.SignalMagicLiterals:       "magic literals",
	domain.SignalAmbiguousNames:      "ambiguous names",
	domain.SignalUndocumentedExports: "undocumented exports",
}

// RenderReport formats a scan report for terminal output.
func RenderReport(r *domain.Report) string {
	var b strings.Builder
	s := r.Summary

	// ── Header ──
	title := headerStyle.Render("aiready")
	subtitle := dimStyle.Render("AI-Readiness Risk")
	color := ratingColor(s.Rating)
	scoreStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d / 100", s.Score))
	ratingStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(s.Rating))
	meta := dimStyle.Render(fmt.Sprintf("%d files · %d signals · top risk: %s", s.FilesAnalyzed, s.TotalSignals, s.TopRisk))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + ratingStyled + "\n" + meta))
	b.WriteString("\n\n")

	// ── Signals ──
	peak := 0
	for _, key := range domain.RiskCategories {
		peak = max(peak, r.AggregateSignals[key])
	}
	for _, key := range domain.RiskCategories {
		renderSignal(&b, signalLabels[key], r.AggregateSignals[key], peak)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Issues ──
	issues := collectAndSortIssues(r.Results)
	if len(issues) > 0 {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Issues"))
		b.WriteString("  ")
		counts := []struct {
			n     int
			label string
			style lipgloss.Style
		}{
			{s.Critical, "critical", critTagStyle},
			{s.Major, "major", majorTagStyle},
			{s.Minor, "minor", minorTagStyle},
			{s.Info, "info", infoTagStyle},
		}
		for _, c := range counts {
			if c.n > 0 {
				b.WriteString(c.style.Render(fmt.Sprintf("%d %s", c.n, c.label)))
				b.WriteString("  ")
			}
		}
		b.WriteString("\n\n")

		for i, issue := range issues {
			if i == MaxIssues {
				fmt.Fprintf(&b, "    %s\n", dimStyle.Render(fmt.Sprintf("… and %d more (use --json for all)", len(issues)-MaxIssues)))
				break
			}
			renderIssue(&b, issue)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	renderDuplicates(&b, r.Duplicates)
	renderRecommendations(&b, r.Recommendations)
	renderSkipped(&b, r.Skipped)

	b.WriteString("\n")
	return b.String()
}

func renderSignal(b *strings.Builder, label string, count, peak int) {
	name := catNameStyle.Render(padRight(label, 24))
	bar := countBar(count, peak, 20)
	n := dimStyle.Render(fmt.Sprintf("%d", count))
	if count == 0 {
		n = passStyle.Render("0")
	}
	fmt.Fprintf(b, "  %s %s  %s\n", name, bar, n)
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	loc := shortenPath(issue.File)
	if issue.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, issue.Line)
	}

	fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(loc))
	fmt.Fprintf(b, "          %s\n", dimStyle.Render(issue.Message))
	if issue.Suggestion != "" {
		fmt.Fprintf(b, "          %s\n", faintStyle.Render("→ "+suggestionText(issue.Type, issue.Suggestion)))
	}
}

// suggestionText turns a naming issue's replacement identifier into advice.
// Other issue types already carry prose.
func suggestionText(issueType, suggestion string) string {
	switch issueType {
	case domain.IssuePoorNaming, domain.IssueConventionMix:
		return "rename to " + suggestion
	}
	return suggestion
}

func renderDuplicates(b *strings.Builder, d domain.Duplicates) {
	if len(d.Clusters) == 0 && len(d.Pairs) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Duplicates") + "  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d patterns", d.Patterns)) + "\n\n")
	for _, c := range d.Clusters {
		fmt.Fprintf(b, "    %s %s  %s\n",
			minorTagStyle.Render("●"),
			catNameStyle.Render(c.BaseName),
			dimStyle.Render(strings.Join(c.Members, ", ")),
		)
	}
	for _, p := range d.Pairs {
		fmt.Fprintf(b, "    %s %s ≈ %s  %s\n",
			infoTagStyle.Render("○"),
			p.First, p.Second,
			faintStyle.Render(fmt.Sprintf("%.2f", p.Similarity)),
		)
	}
}

func renderRecommendations(b *strings.Builder, recs []domain.Recommendation) {
	if len(recs) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Recommendations") + "\n\n")
	for i, rec := range recs {
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), rec.Message)
	}
}

func renderSkipped(b *strings.Builder, skipped []domain.SkippedFile) {
	if len(skipped) == 0 {
		return
	}
	b.WriteString("\n  " + skipStyle.Render(fmt.Sprintf("Skipped %d files", len(skipped))) + "\n")
	for _, s := range skipped {
		fmt.Fprintf(b, "    %s %s\n", skipStyle.Render("○"), skipStyle.Render(s.File+" ("+s.Reason+")"))
	}
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityCritical:
		return critTagStyle.Render("crit ")
	case domain.SeverityMajor:
		return majorTagStyle.Render("major")
	case domain.SeverityMinor:
		return minorTagStyle.Render("minor")
	default:
		return infoTagStyle.Render("info ")
	}
}

func collectAndSortIssues(results []domain.FileResult) []domain.Issue {
	var all []domain.Issue
	for _, fr := range results {
		all = append(all, fr.Issues...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Severity.Rank() > all[j].Severity.Rank()
	})
	return all
}

func countBar(count, peak, width int) string {
	filled := 0
	if peak > 0 {
		filled = max(0, min(count*width/peak, width))
	}
	if count > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled

	color := success
	switch {
	case filled*2 >= width:
		color = danger
	case filled > 0:
		color = warning
	}
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func ratingColor(r domain.Rating) lipgloss.Color {
	if c, ok := ratingColors[r]; ok {
		return c
	}
	return fg
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return filepath.ToSlash(path)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats score history for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scan history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Scan History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(ratingColor(e.Rating)).
			Render(fmt.Sprintf("%d/100", e.Score))

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(padRight(date, 10)),
			faintStyle.Render(hash),
			scoreStyled,
			padRight(string(e.Rating), 8),
			dimStyle.Render(fmt.Sprintf("%d signals", e.TotalSignals)),
		)

		// Higher scores are better.
		if i > 0 {
			diff := e.Score - entries[i-1].Score
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
