// Package scoring turns per-file results into repository totals, a risk
// rating and recommendations.
package scoring

import (
	"github.com/aiready/aiready/internal/domain"
)

// Summarize computes the repository summary from unfiltered results and the
// merged signal counts.
func Summarize(results []domain.FileResult, agg domain.Signals) domain.Summary {
	s := CountSeverities(results)
	s.TopRisk = TopRisk(agg)
	risk := RiskIndex(s, agg)
	s.Rating = RatingFor(risk, s.Critical)
	s.Score = ScoreFor(risk)
	return s
}

// CountSeverities fills FilesAnalyzed, TotalSignals and the per-severity
// counts. Call it before any severity filtering.
func CountSeverities(results []domain.FileResult) domain.Summary {
	s := domain.Summary{FilesAnalyzed: len(results)}
	for _, r := range results {
		for _, is := range r.Issues {
			s.TotalSignals++
			switch is.Severity {
			case domain.SeverityCritical:
				s.Critical++
			case domain.SeverityMajor:
				s.Major++
			case domain.SeverityMinor:
				s.Minor++
			case domain.SeverityInfo:
				s.Info++
			}
		}
	}
	return s
}

// TopRisk returns the signal category with the highest aggregate count.
// Ties go to the category listed first in domain.RiskCategories.
func TopRisk(agg domain.Signals) string {
	top, best := domain.TopRiskNone, 0
	for _, c := range domain.RiskCategories {
		if n := agg[c]; n > best {
			top, best = c, n
		}
	}
	return top
}

// FilterIssues returns a copy of results keeping only issues at or above
// minSeverity. The input is not modified.
func FilterIssues(results []domain.FileResult, minSeverity domain.Severity) []domain.FileResult {
	out := make([]domain.FileResult, len(results))
	for i, r := range results {
		kept := make([]domain.Issue, 0, len(r.Issues))
		for _, is := range r.Issues {
			if minSeverity == "" || is.Severity.AtLeast(minSeverity) {
				kept = append(kept, is)
			}
		}
		r.Issues = kept
		r.Signals = r.Signals.Clone()
		out[i] = r
	}
	return out
}
