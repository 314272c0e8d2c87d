package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aiready/aiready/internal/adapters/outbound/history"
	"github.com/aiready/aiready/internal/adapters/outbound/tui"
	"github.com/aiready/aiready/internal/application"
	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/scoring"
)

func newScanCmd(st *settings) *cobra.Command {
	var (
		jsonOutput  bool
		ciMode      bool
		maxRating   string
		minSeverity string
		include     []string
		exclude     []string
		badge       bool
		showHistory bool
		progress    bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a codebase for AI-readiness risks",
		Long:  "Analyze every supported source file below path and report naming issues, duplicated patterns and ambiguity signals.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var limit domain.Rating
			if ciMode {
				if limit, err = domain.ParseRating(maxRating); err != nil {
					return err
				}
			}

			ov := application.Overrides{
				Include:     include,
				Exclude:     exclude,
				MinSeverity: minSeverity,
			}
			if progress {
				ov.Progress = progressPrinter(cmd.ErrOrStderr())
			}

			svc, registry := newProjectService(st.logger())
			report, err := svc.ScanProject(cmd.Context(), absPath, ov)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			st.logger().WithField("cached_parses", registry.Len()).Debug("parse cache")

			hist := history.New()
			entry := domain.NewHistoryEntry(report, time.Now().Format(time.RFC3339))
			if err := hist.Save(absPath, entry); err != nil {
				st.logger().WithError(err).Debug("saving scan history")
			}

			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case badge:
				renderBadge(cmd, report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode && scoring.WorseThan(report.Summary.Rating, limit) {
				return fmt.Errorf("rating %s is worse than allowed %s", report.Summary.Rating, limit)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	f.BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if the rating is worse than --max-rating")
	f.StringVar(&maxRating, "max-rating", string(domain.RatingModerate), "Worst rating allowed in CI mode (minimal, low, moderate, high, severe)")
	f.StringVar(&minSeverity, "min-severity", "", "Hide issues below this severity (info, minor, major, critical)")
	f.StringArrayVar(&include, "include", nil, "Only scan files matching this glob (repeatable)")
	f.StringArrayVar(&exclude, "exclude", nil, "Skip files matching this glob (repeatable)")
	f.BoolVar(&badge, "badge", false, "Output a shields.io badge URL")
	f.BoolVar(&showHistory, "history", false, "Show scan history")
	f.BoolVar(&progress, "progress", false, "Report progress on stderr")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var badgeColors = map[domain.Rating]string{
	domain.RatingMinimal:  "brightgreen",
	domain.RatingLow:      "green",
	domain.RatingModerate: "yellow",
	domain.RatingHigh:     "orange",
	domain.RatingSevere:   "critical",
}

func renderBadge(cmd *cobra.Command, r *domain.Report) {
	url := fmt.Sprintf("https://img.shields.io/badge/ai--readiness-%d%%2F100-%s", r.Summary.Score, badgeColors[r.Summary.Rating])
	fmt.Fprintln(cmd.OutOrStdout(), url)
}

// progressPrinter rewrites a single status line. Calls arrive serialized.
func progressPrinter(w io.Writer) domain.ProgressFunc {
	return func(p domain.Progress) {
		fmt.Fprintf(w, "\r%-10s %d/%d", p.Phase, p.Processed, p.Total)
		if p.Phase == domain.PhaseDuplicates {
			fmt.Fprintln(w)
		}
	}
}
