package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

const (
	maxSignalRecommendations = 3
	maxPairRecommendations   = 5
	maxListedMembers         = 4
)

type categoryAdvice struct {
	category string
	weight   float64
	format   string
}

var adviceFor = map[string]categoryAdvice{
	domain.SignalImplicitSideEffects: {domain.CategoryPredictability, 1.5, "Make %d hidden side effect(s) explicit or rename the functions that cause them"},
	domain.SignalDeepCallbacks:       {domain.CategoryComplexity, 1.5, "Flatten %d deeply nested callback chain(s)"},
	domain.SignalBooleanTraps:        {domain.CategoryAPIDesign, 1.0, "Replace %d boolean-trap parameter list(s) with options or keyword arguments"},
	domain.SignalMagicLiterals:       {domain.CategoryClarity, 0.5, "Replace %d magic literal(s) with named constants"},
	domain.SignalAmbiguousNames:      {domain.CategoryNaming, 1.0, "Disambiguate %d ambiguous or overloaded name(s)"},
	domain.SignalUndocumentedExports: {domain.CategoryDocumentation, 0.3, "Document %d exported symbol(s)"},
}

// Recommend builds one line per notable finding, highest impact first.
func Recommend(results []domain.FileResult, agg domain.Signals, dups domain.Duplicates) []domain.Recommendation {
	var recs []domain.Recommendation

	for _, c := range dups.Clusters {
		members := c.Members
		suffix := ""
		if len(members) > maxListedMembers {
			suffix = fmt.Sprintf(", +%d more", len(members)-maxListedMembers)
			members = members[:maxListedMembers]
		}
		recs = append(recs, domain.Recommendation{
			Category: "duplication",
			Message: fmt.Sprintf("Consolidate %d functions around %q (%s%s)",
				len(c.Members), c.BaseName, strings.Join(members, ", "), suffix),
			Impact: round2(1.5 * float64(len(c.Members))),
		})
	}

	for i, p := range dups.Pairs {
		if i == maxPairRecommendations {
			break
		}
		recs = append(recs, domain.Recommendation{
			Category: "duplication",
			Message: fmt.Sprintf("Merge near-duplicates %s (%s) and %s (%s), %.0f%% similar",
				p.First, p.FirstFile, p.Second, p.SecondFile, 100*p.Similarity),
			Impact: round2(2 * p.Similarity),
		})
	}

	var signalRecs []domain.Recommendation
	for _, key := range domain.RiskCategories {
		n := agg[key]
		if n == 0 {
			continue
		}
		a := adviceFor[key]
		signalRecs = append(signalRecs, domain.Recommendation{
			Category: a.category,
			Message:  fmt.Sprintf(a.format, n),
			Impact:   round2(a.weight * float64(n)),
		})
	}
	sortRecommendations(signalRecs)
	if len(signalRecs) > maxSignalRecommendations {
		signalRecs = signalRecs[:maxSignalRecommendations]
	}
	recs = append(recs, signalRecs...)

	if n := countNaming(results); n > 0 {
		recs = append(recs, domain.Recommendation{
			Category: domain.CategoryNaming,
			Message:  fmt.Sprintf("Rename %d identifier(s) that break the language's naming conventions", n),
			Impact:   round2(0.8 * float64(n)),
		})
	}

	sortRecommendations(recs)
	return recs
}

func sortRecommendations(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Impact != recs[j].Impact {
			return recs[i].Impact > recs[j].Impact
		}
		return recs[i].Message < recs[j].Message
	})
}

func countNaming(results []domain.FileResult) int {
	n := 0
	for _, r := range results {
		for _, is := range r.Issues {
			if is.Type == domain.IssuePoorNaming || is.Type == domain.IssueConventionMix {
				n++
			}
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
