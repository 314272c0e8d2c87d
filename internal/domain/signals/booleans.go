package signals

import (
	"fmt"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

func detectBooleanTraps(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
	var issues []domain.Issue
	for _, e := range pf.Exports {
		if e.Kind != domain.KindFunction {
			continue
		}
		var names []string
		for _, p := range e.Params {
			if isBoolParam(p) && !p.KeywordOnly {
				names = append(names, p.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		sev := domain.SeverityMinor
		if len(names) > 1 {
			sev = domain.SeverityMajor
		}
		is := newIssue(pf, domain.IssueBooleanTrap, domain.CategoryAPIDesign, sev, e.Line)
		is.Identifier = e.QualifiedName()
		is.Message = fmt.Sprintf("%s takes positional boolean parameter(s): %s", e.QualifiedName(), strings.Join(names, ", "))
		is.Suggestion = "use an options value, an enum or keyword-only arguments"
		issues = append(issues, is)
	}
	return issues
}

func isBoolParam(p domain.Param) bool {
	switch strings.TrimSpace(p.Type) {
	case "bool", "boolean", "Boolean":
		return true
	}
	switch strings.TrimSpace(p.Default) {
	case "True", "False", "true", "false":
		return true
	}
	return false
}
