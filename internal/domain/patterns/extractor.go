// Package patterns turns parsed files into structural patterns and compares
// them for near-duplicate detection.
package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

// Extract returns one pattern per exported function or class in pf.
// Other export kinds are ignored.
func Extract(pf *domain.ParsedFile) []domain.StructuralPattern {
	if pf == nil {
		return nil
	}
	var out []domain.StructuralPattern
	for _, e := range pf.Exports {
		var kind domain.PatternKind
		switch e.Kind {
		case domain.KindFunction:
			kind = domain.PatternFunction
		case domain.KindClass:
			kind = domain.PatternClass
		default:
			continue
		}
		end := e.EndLine
		if end < e.Line {
			end = e.Line
		}
		out = append(out, domain.StructuralPattern{
			File:         pf.Path,
			Name:         e.Name,
			Kind:         kind,
			StartLine:    e.Line,
			EndLine:      end,
			Imports:      uniqueSorted(e.Imports),
			Dependencies: uniqueSorted(e.Dependencies),
			Signature:    Signature(pf.Language, e),
			Language:     pf.Language,
		})
	}
	return out
}

// Signature renders the normalized signature of an export. Parameter names
// are kept in declaration order so the count can be recovered.
func Signature(lang domain.Language, e domain.Export) string {
	if e.Kind == domain.KindClass {
		if lang == domain.LanguageGo {
			return "type " + e.Name
		}
		return "class " + e.Name
	}
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Name
		if params[i] == "" {
			params[i] = "_"
		}
	}
	list := strings.Join(params, ", ")

	switch lang {
	case domain.LanguageGo:
		if e.Receiver != "" {
			return fmt.Sprintf("func (%s) %s(%s)", e.Receiver, e.Name, list)
		}
		return fmt.Sprintf("func %s(%s)", e.Name, list)
	case domain.LanguagePython:
		return fmt.Sprintf("def %s(%s)", e.Name, list)
	default:
		return fmt.Sprintf("function %s(%s)", e.Name, list)
	}
}

// ParamCount recovers the parameter count from the last top-level
// parenthesized group of sig. It returns -1 when sig has no such group.
func ParamCount(sig string) int {
	start, end := -1, -1
	depth := 0
	for i, r := range sig {
		switch r {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			if depth == 0 {
				return -1
			}
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if depth != 0 || start < 0 || end < start {
		return -1
	}

	inner := strings.TrimSpace(sig[start+1 : end])
	if inner == "" {
		return 0
	}
	count := 1
	depth = 0
	for _, r := range inner {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
