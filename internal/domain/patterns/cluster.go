package patterns

import (
	"sort"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

// clusterPrefixes extends VerbPrefixes with retrieval synonyms so that
// get_user, load_user and read_user land in the same group.
var clusterPrefixes = append(append([]string{}, VerbPrefixes...), "load", "read", "find", "retrieve", "list")

// BaseName is the grouping key used for clustering.
func BaseName(name string) string {
	return strings.Join(stripPrefix(lowerWords(name), clusterPrefixes), "_")
}

// Cluster groups patterns by base name and returns the groups that have at
// least minSize members, largest first.
func Cluster(ps []domain.StructuralPattern, minSize int) []domain.DuplicateCluster {
	if minSize <= 0 {
		minSize = domain.DefaultClusterMinSize
	}
	groups := make(map[string][]domain.StructuralPattern)
	for _, p := range ps {
		base := BaseName(p.Name)
		if base == "" {
			continue
		}
		groups[base] = append(groups[base], p)
	}

	var clusters []domain.DuplicateCluster
	for base, members := range groups {
		if len(members) < minSize {
			continue
		}
		sort.Slice(members, func(i, j int) bool {
			if members[i].Name != members[j].Name {
				return members[i].Name < members[j].Name
			}
			return members[i].File < members[j].File
		})
		c := domain.DuplicateCluster{BaseName: base}
		var files []string
		for _, m := range members {
			c.Members = append(c.Members, m.Name)
			files = append(files, m.File)
		}
		c.Files = uniqueSorted(files)
		clusters = append(clusters, c)
	}

	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Members) != len(clusters[j].Members) {
			return len(clusters[i].Members) > len(clusters[j].Members)
		}
		return clusters[i].BaseName < clusters[j].BaseName
	})
	return clusters
}

// FindNearDuplicates returns every pair of distinct patterns from the same
// language family whose similarity is strictly above threshold.
func FindNearDuplicates(ps []domain.StructuralPattern, threshold float64) []domain.DuplicatePair {
	sorted := make([]domain.StructuralPattern, len(ps))
	copy(sorted, ps)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].StartLine < sorted[j].StartLine
	})

	var pairs []domain.DuplicatePair
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if a.Language.Family() != b.Language.Family() {
				continue
			}
			if a.File == b.File && a.Name == b.Name && a.StartLine == b.StartLine {
				continue
			}
			score := Similarity(a, b)
			if score <= threshold {
				continue
			}
			pairs = append(pairs, domain.DuplicatePair{
				First:      a.Name,
				FirstFile:  a.File,
				Second:     b.Name,
				SecondFile: b.File,
				Similarity: score,
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})
	return pairs
}
