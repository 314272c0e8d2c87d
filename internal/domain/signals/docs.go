package signals

import (
	"fmt"
	"strings"

	"github.com/aiready/aiready/internal/domain"
)

func detectUndocumented(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
	var issues []domain.Issue
	for _, e := range pf.Exports {
		if strings.TrimSpace(e.Doc) != "" {
			continue
		}
		sev := domain.SeverityInfo
		if isCallable(e) {
			sev = domain.SeverityMinor
		}
		is := newIssue(pf, domain.IssueUndocumentedExport, domain.CategoryDocumentation, sev, e.Line)
		is.Identifier = e.QualifiedName()
		is.Column = e.Column
		is.Message = fmt.Sprintf("exported %s %s has no documentation", e.Kind, e.QualifiedName())
		is.Suggestion = "add a doc comment describing intent and contract"
		issues = append(issues, is)
	}
	return issues
}
