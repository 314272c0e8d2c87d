package signals

import (
	"fmt"

	"github.com/aiready/aiready/internal/domain"
)

// queryVerbs name functions callers expect to be free of side effects.
var queryVerbs = map[string]bool{
	"get": true, "is": true, "has": true, "can": true, "should": true,
	"calc": true, "calculate": true, "compute": true, "format": true,
	"validate": true, "check": true, "find": true, "to": true, "parse": true,
	"count": true, "as": true,
}

// mutationVerbs announce that state changes.
var mutationVerbs = map[string]bool{
	"set": true, "update": true, "save": true, "write": true, "delete": true,
	"remove": true, "create": true, "add": true, "insert": true, "init": true,
	"register": true, "reset": true, "clear": true, "put": true, "store": true,
	"apply": true, "mark": true, "cancel": true, "must": true, "new": true,
	"configure": true, "setup": true, "push": true, "pop": true, "append": true,
}

func detectSideEffects(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
	var issues []domain.Issue
	for _, e := range pf.Exports {
		if e.Kind != domain.KindFunction || len(e.Effects) == 0 {
			continue
		}
		words := lowerWords(e.Name)
		if len(words) == 0 {
			continue
		}
		verb := words[0]

		if queryVerbs[verb] {
			eff := e.Effects[0]
			is := newIssue(pf, domain.IssueImplicitSideEffect, domain.CategoryPredictability, domain.SeverityMajor, eff.Line)
			is.Identifier = e.QualifiedName()
			is.Snippet = eff.Target
			is.Message = fmt.Sprintf("%s reads like a query but has a %s side effect (%s)", e.QualifiedName(), eff.Kind, eff.Target)
			is.Suggestion = "move the side effect to the caller or rename the function"
			issues = append(issues, is)
			continue
		}
		if mutationVerbs[verb] {
			continue
		}
		// Value-returning functions should be pure. Void functions may do IO.
		for _, eff := range e.Effects {
			if eff.Kind == domain.EffectIO && !e.HasResult {
				continue
			}
			is := newIssue(pf, domain.IssueImplicitSideEffect, domain.CategoryPredictability, domain.SeverityMinor, eff.Line)
			is.Identifier = e.QualifiedName()
			is.Snippet = eff.Target
			if e.HasResult {
				is.Message = fmt.Sprintf("%s returns a value but also has a %s side effect (%s)", e.QualifiedName(), eff.Kind, eff.Target)
				is.Suggestion = "keep the computation pure and perform the effect in the caller"
			} else {
				is.Message = fmt.Sprintf("%s has a hidden %s of %s", e.QualifiedName(), eff.Kind, eff.Target)
				is.Suggestion = "return the new value or name the function after the mutation"
			}
			issues = append(issues, is)
			break
		}
	}
	return issues
}
