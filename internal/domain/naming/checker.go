package naming

import "github.com/aiready/aiready/internal/domain"

// Checker validates identifiers against per-language naming conventions.
type Checker struct {
	conventions Conventions
}

// NewChecker copies conventions so later changes to the map do not leak in.
func NewChecker(conventions Conventions) *Checker {
	c := make(Conventions, len(conventions))
	for lang, conv := range conventions {
		c[lang] = conv
	}
	return &Checker{conventions: c}
}

// Check returns at most one issue for identifier. Languages without a
// convention table are never flagged.
func (c *Checker) Check(lang domain.Language, identifier string, kind domain.SymbolKind, file string, line, column int) (domain.NamingIssue, bool) {
	conv, ok := c.conventions[lang]
	if !ok || identifier == "" || conv.IsExempt(identifier) {
		return domain.NamingIssue{}, false
	}

	issue := domain.NamingIssue{
		Identifier: identifier,
		File:       file,
		Line:       line,
		Column:     column,
		Category:   domain.CategoryNaming,
	}

	switch kind {
	case domain.KindClass, domain.KindInterface, domain.KindType:
		if conv.Class.MatchString(identifier) {
			return domain.NamingIssue{}, false
		}
		issue.Kind = domain.IssuePoorNaming
		issue.Severity = domain.SeverityMajor
		issue.Suggestion = conv.ClassCasing.Apply(identifier)

	case domain.KindFunction:
		if conv.Function.MatchString(identifier) || !conv.ForeignShape.MatchString(identifier) {
			return domain.NamingIssue{}, false
		}
		issue.Kind = domain.IssueConventionMix
		issue.Severity = domain.SeverityMajor
		issue.Suggestion = conv.FunctionCasing.Apply(identifier)

	case domain.KindConst, domain.KindVariable:
		if IsAllUpper(identifier) && len(identifier) > 1 {
			if conv.Constant.MatchString(identifier) {
				return domain.NamingIssue{}, false
			}
			issue.Kind = domain.IssuePoorNaming
			issue.Severity = domain.SeverityMinor
			issue.Suggestion = conv.ConstantCasing.Apply(identifier)
			break
		}
		if conv.Variable.MatchString(identifier) || !conv.ForeignShape.MatchString(identifier) {
			return domain.NamingIssue{}, false
		}
		issue.Kind = domain.IssueConventionMix
		issue.Severity = domain.SeverityMajor
		issue.Suggestion = conv.FunctionCasing.Apply(identifier)

	default:
		return domain.NamingIssue{}, false
	}

	return issue, true
}
