package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiready/aiready/internal/domain"
)

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]domain.Language{
		"go": domain.LanguageGo, "Golang": domain.LanguageGo,
		"py": domain.LanguagePython, " python ": domain.LanguagePython,
		"js": domain.LanguageJavaScript, "TS": domain.LanguageTypeScript,
	} {
		got, err := domain.ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := domain.ParseLanguage("rust")
	assert.ErrorContains(t, err, `unknown language "rust"`)
}

func TestLanguageFamily(t *testing.T) {
	assert.Equal(t, "javascript", domain.LanguageTypeScript.Family())
	assert.Equal(t, "javascript", domain.LanguageJavaScript.Family())
	assert.Equal(t, "python", domain.LanguagePython.Family())
}

func TestSeverityOrder(t *testing.T) {
	assert.True(t, domain.SeverityCritical.AtLeast(domain.SeverityMajor))
	assert.True(t, domain.SeverityMinor.AtLeast(domain.SeverityMinor))
	assert.False(t, domain.SeverityInfo.AtLeast(domain.SeverityMinor))
	assert.Equal(t, -1, domain.Severity("urgent").Rank())

	sev, err := domain.ParseSeverity("MAJOR")
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityMajor, sev)
	_, err = domain.ParseSeverity("urgent")
	assert.Error(t, err)
}

func TestParseSymbolKind(t *testing.T) {
	k, err := domain.ParseSymbolKind("Class")
	require.NoError(t, err)
	assert.Equal(t, domain.KindClass, k)

	_, err = domain.ParseSymbolKind("method")
	assert.ErrorContains(t, err, "unknown kind")
}

func TestParseRating(t *testing.T) {
	r, err := domain.ParseRating("High")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingHigh, r)
	assert.Less(t, domain.RatingLow.Rank(), domain.RatingSevere.Rank())

	_, err = domain.ParseRating("ok")
	assert.Error(t, err)
}

func TestSignals_MergeAndClone(t *testing.T) {
	s := domain.NewSignals()
	assert.Len(t, s, 10)
	assert.Zero(t, s[domain.SignalDeadCode])

	s.Merge(domain.Signals{domain.SignalMagicLiterals: 2, domain.SignalTotalSymbols: 5})
	s.Merge(domain.Signals{domain.SignalMagicLiterals: 1})
	assert.Equal(t, 3, s[domain.SignalMagicLiterals])
	assert.Equal(t, 5, s[domain.SignalTotalSymbols])

	c := s.Clone()
	c[domain.SignalMagicLiterals] = 99
	assert.Equal(t, 3, s[domain.SignalMagicLiterals])
}

func TestNamingIssue_ToIssue(t *testing.T) {
	n := domain.NamingIssue{
		Kind:       domain.IssueConventionMix,
		Identifier: "validateEmail",
		File:       "utils.py",
		Line:       3,
		Severity:   domain.SeverityMinor,
		Suggestion: "validate_email",
	}
	issue := n.ToIssue()
	assert.Equal(t, domain.IssueConventionMix, issue.Type)
	assert.Equal(t, "utils.py", issue.File)
	assert.Equal(t, "validate_email", issue.Suggestion)
	assert.Contains(t, issue.Message, "mixes naming conventions")
}
