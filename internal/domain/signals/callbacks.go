package signals

import (
	"fmt"

	"github.com/aiready/aiready/internal/domain"
)

func detectDeepCallbacks(pf *domain.ParsedFile, threshold int) []domain.Issue {
	var issues []domain.Issue
	for _, e := range pf.Exports {
		if e.CallbackDepth <= threshold {
			continue
		}
		sev := domain.SeverityMajor
		if e.CallbackDepth >= threshold+2 {
			sev = domain.SeverityCritical
		}
		is := newIssue(pf, domain.IssueDeepCallback, domain.CategoryComplexity, sev, e.Line)
		is.Identifier = e.QualifiedName()
		is.Message = fmt.Sprintf("%s nests callbacks %d levels deep (limit %d)", e.QualifiedName(), e.CallbackDepth, threshold)
		is.Suggestion = "flatten with named functions or sequential awaits"
		issues = append(issues, is)
	}
	return issues
}
