package patterns

import (
	"strings"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
)

// Factor weights. They sum to 1.0.
const (
	WeightName      = 0.30
	WeightImports   = 0.40
	WeightKind      = 0.10
	WeightSignature = 0.20
)

// VerbPrefixes are stripped before names are compared.
var VerbPrefixes = []string{"get", "set", "is", "has", "create", "delete", "update", "fetch"}

// Similarity scores two patterns in [0,1]. Factors that cannot be computed
// are dropped from both the weighted sum and the total weight.
func Similarity(a, b domain.StructuralPattern) float64 {
	num, den := 0.0, 0.0
	add := func(weight, score float64) {
		num += weight * score
		den += weight
	}

	add(WeightName, NameSimilarity(a.Name, b.Name))
	add(WeightImports, jaccardImports(a.Imports, b.Imports))
	if a.Kind == b.Kind {
		add(WeightKind, 1)
	} else {
		add(WeightKind, 0)
	}
	if s, ok := signatureSimilarity(a.Signature, b.Signature); ok {
		add(WeightSignature, s)
	}

	if den == 0 {
		return 0
	}
	score := num / den
	if score > 1 {
		return 1
	}
	return score
}

// NameSimilarity compares two identifiers after stripping verb prefixes.
func NameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ta := stripPrefix(lowerWords(a), VerbPrefixes)
	tb := stripPrefix(lowerWords(b), VerbPrefixes)
	sa, sb := strings.Join(ta, "_"), strings.Join(tb, "_")
	switch {
	case sa == sb:
		return 0.9
	case sa != "" && sb != "" && (strings.Contains(sa, sb) || strings.Contains(sb, sa)):
		return 0.7
	}
	return jaccard(ta, tb)
}

func signatureSimilarity(a, b string) (float64, bool) {
	if a == b && a != "" {
		return 1, true
	}
	ca, cb := ParamCount(a), ParamCount(b)
	if ca < 0 || cb < 0 {
		return 0, false
	}
	switch diff := ca - cb; {
	case diff == 0:
		return 0.8, true
	case diff == 1 || diff == -1:
		return 0.5, true
	default:
		return 0, true
	}
}

func jaccardImports(a, b []string) float64 {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 1
	case len(a) == 0 || len(b) == 0:
		return 0
	}
	return jaccard(a, b)
}

func jaccard(a, b []string) float64 {
	set := make(map[string]int, len(a)+len(b))
	for _, s := range a {
		set[s] |= 1
	}
	for _, s := range b {
		set[s] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	inter := 0
	for _, v := range set {
		if v == 3 {
			inter++
		}
	}
	return float64(inter) / float64(len(set))
}

func lowerWords(name string) []string {
	words := naming.SplitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// stripPrefix drops a leading verb when something remains after it.
func stripPrefix(words []string, prefixes []string) []string {
	if len(words) < 2 {
		return words
	}
	for _, p := range prefixes {
		if words[0] == p {
			return words[1:]
		}
	}
	return words
}
