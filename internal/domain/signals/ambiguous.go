package signals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
)

// synonymGroups are verbs an assistant cannot tell apart by name alone.
var synonymGroups = [][]string{
	{"get", "fetch", "retrieve", "load", "read", "find"},
	{"create", "make", "build", "new", "add"},
	{"delete", "remove", "destroy", "drop"},
	{"update", "modify", "edit", "change", "set"},
}

var synonymOf = func() map[string]int {
	m := make(map[string]int)
	for i, g := range synonymGroups {
		for _, v := range g {
			m[v] = i
		}
	}
	return m
}()

var vagueWords = map[string]bool{
	"handle": true, "handler": true, "process": true, "data": true, "run": true,
	"do": true, "execute": true, "manage": true, "manager": true, "util": true,
	"utils": true, "helper": true, "helpers": true, "info": true, "stuff": true,
	"thing": true, "item": true, "object": true, "temp": true, "tmp": true,
	"misc": true, "foo": true, "bar": true, "value": true,
}

func detectAmbiguousNames(pf *domain.ParsedFile, sig domain.Signals) []domain.Issue {
	var issues []domain.Issue

	// Duplicate exported names.
	byName := make(map[string][]domain.Export)
	var order []string
	for _, e := range pf.Exports {
		q := e.QualifiedName()
		if _, ok := byName[q]; !ok {
			order = append(order, q)
		}
		byName[q] = append(byName[q], e)
	}
	for _, q := range order {
		dups := byName[q]
		if len(dups) < 2 {
			continue
		}
		sig[domain.SignalOverloadedSymbols]++
		is := newIssue(pf, domain.IssueAmbiguousName, domain.CategoryNaming, domain.SeverityMajor, dups[1].Line)
		is.Identifier = q
		is.Message = fmt.Sprintf("%s is declared %d times", q, len(dups))
		is.Suggestion = "give each declaration a distinct name"
		issues = append(issues, is)
	}

	// Synonymous verbs on the same noun.
	type key struct {
		group int
		noun  string
	}
	verbs := make(map[key]map[string]domain.Export)
	var keys []key
	for _, e := range pf.Exports {
		if e.Kind != domain.KindFunction {
			continue
		}
		words := lowerWords(e.Name)
		if len(words) < 2 {
			continue
		}
		g, ok := synonymOf[words[0]]
		if !ok {
			continue
		}
		k := key{group: g, noun: strings.Join(words[1:], "_")}
		if verbs[k] == nil {
			verbs[k] = make(map[string]domain.Export)
			keys = append(keys, k)
		}
		if _, seen := verbs[k][words[0]]; !seen {
			verbs[k][words[0]] = e
		}
	}
	for _, k := range keys {
		if len(verbs[k]) < 2 {
			continue
		}
		var names []string
		line := 0
		for _, e := range verbs[k] {
			names = append(names, e.Name)
			line = max(line, e.Line)
		}
		sort.Strings(names)
		is := newIssue(pf, domain.IssueAmbiguousName, domain.CategoryNaming, domain.SeverityMajor, line)
		is.Identifier = strings.Join(names, ", ")
		is.Message = fmt.Sprintf("near-synonymous names for %q: %s", k.noun, strings.Join(names, ", "))
		is.Suggestion = "keep one verb per operation"
		issues = append(issues, is)
	}

	// Vague names.
	for _, e := range pf.Exports {
		if !isCallable(e) || !isVague(e.Name) {
			continue
		}
		is := newIssue(pf, domain.IssueAmbiguousName, domain.CategoryNaming, domain.SeverityMinor, e.Line)
		is.Identifier = e.QualifiedName()
		is.Message = fmt.Sprintf("%s is too vague to convey intent", e.QualifiedName())
		is.Suggestion = "name the thing being acted on"
		issues = append(issues, is)
	}
	return issues
}

// isVague reports whether every word of name is a generic filler word.
func isVague(name string) bool {
	words := lowerWords(name)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !vagueWords[w] {
			return false
		}
	}
	return true
}

func lowerWords(name string) []string {
	words := naming.SplitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}
