package scoring_test

import (
	"testing"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(sev domain.Severity) domain.Issue {
	return domain.Issue{Type: domain.IssueMagicLiteral, Severity: sev, File: "a.py"}
}

func sampleResults() []domain.FileResult {
	return []domain.FileResult{
		{File: "a.py", Issues: []domain.Issue{issue(domain.SeverityInfo), issue(domain.SeverityMajor), issue(domain.SeverityMinor)}, Signals: domain.Signals{"magicLiterals": 3}},
		{File: "b.py", Issues: []domain.Issue{issue(domain.SeverityCritical), issue(domain.SeverityInfo)}},
	}
}

func TestCountSeverities(t *testing.T) {
	s := scoring.CountSeverities(sampleResults())
	assert.Equal(t, 2, s.FilesAnalyzed)
	assert.Equal(t, 5, s.TotalSignals)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 1, s.Major)
	assert.Equal(t, 1, s.Minor)
	assert.Equal(t, 2, s.Info)
}

func TestFilterIssues_DoesNotMutateInput(t *testing.T) {
	results := sampleResults()
	filtered := scoring.FilterIssues(results, domain.SeverityMajor)

	require.Len(t, filtered, 2)
	assert.Len(t, filtered[0].Issues, 1)
	assert.Len(t, filtered[1].Issues, 1)
	assert.Len(t, results[0].Issues, 3)

	filtered[0].Signals["magicLiterals"] = 99
	assert.Equal(t, 3, results[0].Signals["magicLiterals"])
}

func TestFilterIssues_SummaryInvariant(t *testing.T) {
	results := sampleResults()
	before := scoring.CountSeverities(results)
	for _, sev := range domain.Severities {
		filtered := scoring.FilterIssues(results, sev)
		assert.Equal(t, before, scoring.CountSeverities(results), sev)

		// Each step up the severity ladder can only shrink the per-file lists.
		for i := range filtered {
			assert.LessOrEqual(t, len(filtered[i].Issues), len(results[i].Issues))
		}
	}
}

func TestTopRisk(t *testing.T) {
	assert.Equal(t, domain.TopRiskNone, scoring.TopRisk(domain.NewSignals()))
	assert.Equal(t, domain.SignalMagicLiterals, scoring.TopRisk(domain.Signals{
		domain.SignalMagicLiterals:  5,
		domain.SignalBooleanTraps:   2,
		domain.SignalTotalSymbols:   100,
		domain.SignalDeadCode:       50,
		domain.SignalAmbiguousNames: 4,
	}))
}

func TestTopRisk_TieBreakIsFixed(t *testing.T) {
	sig := domain.Signals{
		domain.SignalUndocumentedExports: 3,
		domain.SignalMagicLiterals:       3,
		domain.SignalDeepCallbacks:       3,
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, domain.SignalDeepCallbacks, scoring.TopRisk(sig))
	}
}

func TestSummarize_EmptyCodebase(t *testing.T) {
	s := scoring.Summarize(nil, domain.NewSignals())
	assert.Equal(t, domain.RatingMinimal, s.Rating)
	assert.Equal(t, 0, s.TotalSignals)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, domain.TopRiskNone, s.TopRisk)
}
