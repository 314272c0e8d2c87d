package signals

import (
	"fmt"

	"github.com/aiready/aiready/internal/domain"
)

func detectDeadCode(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
	issues := make([]domain.Issue, 0, len(pf.Unreferenced))
	for _, s := range pf.Unreferenced {
		is := newIssue(pf, domain.IssueDeadCode, domain.CategoryMaintainability, domain.SeverityInfo, s.Line)
		is.Identifier = s.Name
		is.Message = fmt.Sprintf("private function %s is never referenced in this file", s.Name)
		is.Suggestion = "delete it or move it next to its caller"
		issues = append(issues, is)
	}
	return issues
}
