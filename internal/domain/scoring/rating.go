package scoring

import (
	"math"

	"github.com/aiready/aiready/internal/domain"
)

// criticalWeight makes one critical finding count like three major ones.
const criticalWeight = 3.0

// Upper bounds of each rating band, exclusive. Anything at or above the
// last bound is severe.
var ratingBounds = []struct {
	limit  float64
	rating domain.Rating
}{
	{0.05, domain.RatingMinimal},
	{0.15, domain.RatingLow},
	{0.35, domain.RatingModerate},
	{0.70, domain.RatingHigh},
}

// RiskIndex averages the weighted critical/major density over all symbols
// and over exported symbols. Denominators are floored at 1.
func RiskIndex(s domain.Summary, agg domain.Signals) float64 {
	weight := criticalWeight*float64(s.Critical) + float64(s.Major)
	if weight == 0 {
		return 0
	}
	symbols := float64(max(1, agg[domain.SignalTotalSymbols]))
	exports := float64(max(1, agg[domain.SignalTotalExports]))
	return (weight/symbols + weight/exports) / 2
}

// RatingFor maps a risk index to a band. A repository with any critical
// finding is never rated minimal.
func RatingFor(risk float64, critical int) domain.Rating {
	for _, b := range ratingBounds {
		if risk < b.limit {
			if b.rating == domain.RatingMinimal && critical > 0 {
				return domain.RatingLow
			}
			return b.rating
		}
	}
	return domain.RatingSevere
}

// ScoreFor converts a risk index into a 0-100 score, higher is better.
func ScoreFor(risk float64) int {
	return int(math.Round(100 * (1 - math.Min(1, math.Max(0, risk)))))
}

// WorseThan reports whether r is a worse band than limit.
func WorseThan(r, limit domain.Rating) bool {
	return r.Rank() > limit.Rank()
}
