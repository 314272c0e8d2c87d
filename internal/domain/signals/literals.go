package signals

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

var allowedNumbers = map[float64]bool{0: true, 1: true, -1: true, 2: true}

func detectMagicLiterals(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
	var issues []domain.Issue
	for _, e := range pf.Exports {
		// Constant and variable declarations name their literal.
		if !isCallable(e) {
			continue
		}
		for _, lit := range e.Literals {
			sev, ok := literalSeverity(lit)
			if !ok {
				continue
			}
			is := newIssue(pf, domain.IssueMagicLiteral, domain.CategoryClarity, sev, lit.Line)
			is.Identifier = e.QualifiedName()
			is.Snippet = lit.Value
			is.Message = fmt.Sprintf("magic %s %s in %s", lit.Kind, lit.Value, e.QualifiedName())
			is.Suggestion = "extract into a named constant"
			issues = append(issues, is)
		}
	}
	return issues
}

func literalSeverity(lit domain.Literal) (domain.Severity, bool) {
	switch lit.Kind {
	case domain.LiteralNumber:
		v, err := parseNumber(lit.Value)
		if err != nil || allowedNumbers[v] {
			return "", false
		}
		return domain.SeverityMinor, true
	case domain.LiteralString:
		if isTokenString(unquote(lit.Value)) {
			return domain.SeverityInfo, true
		}
	}
	return "", false
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if !strings.HasPrefix(strings.ToLower(strings.TrimPrefix(s, "-")), "0x") {
		s = strings.TrimRight(s, "nLlUuFfjJ")
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(i), nil
	}
	return strconv.ParseFloat(s, 64)
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isTokenString reports whether s looks like an identifier-ish token such
// as a status code or key rather than prose.
func isTokenString(s string) bool {
	if len(s) < 2 || strings.ContainsAny(s, " \t\n") {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || r == '.' || r == ':' || r == '/' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
