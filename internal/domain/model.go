package domain

import (
	"fmt"
	"strings"
	"time"
)

// Language identifies a supported source language.
type Language string

const (
	LanguageGo         Language = "go"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
)

// SupportedLanguages enumerates every language a parser may be registered for.
var SupportedLanguages = []Language{
	LanguageGo,
	LanguagePython,
	LanguageJavaScript,
	LanguageTypeScript,
}

// Family groups languages whose patterns are comparable with each other.
func (l Language) Family() string {
	if l == LanguageTypeScript {
		return string(LanguageJavaScript)
	}
	return string(l)
}

// ParseLanguage accepts a language name or a common short alias.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go", "golang":
		return LanguageGo, nil
	case "python", "py":
		return LanguagePython, nil
	case "javascript", "js":
		return LanguageJavaScript, nil
	case "typescript", "ts":
		return LanguageTypeScript, nil
	}
	return "", fmt.Errorf("unknown language %q (valid: go, python, javascript, typescript)", s)
}

// Severity ranks the importance of a finding: info < minor < major < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity in ascending order.
var Severities = []Severity{SeverityInfo, SeverityMinor, SeverityMajor, SeverityCritical}

// Rank returns the position of s in the severity order, or -1 if unknown.
func (s Severity) Rank() int {
	for i, sev := range Severities {
		if sev == s {
			return i
		}
	}
	return -1
}

// AtLeast reports whether s is at or above min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity converts a user-supplied string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Rank() < 0 {
		return "", fmt.Errorf("unknown severity %q (valid: info, minor, major, critical)", s)
	}
	return sev, nil
}

// SymbolKind is the declared kind of a top-level symbol.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindClass     SymbolKind = "class"
	KindConst     SymbolKind = "const"
	KindVariable  SymbolKind = "variable"
	KindInterface SymbolKind = "interface"
	KindType      SymbolKind = "type"
)

// ParseSymbolKind converts a user-supplied string into a SymbolKind.
func ParseSymbolKind(s string) (SymbolKind, error) {
	k := SymbolKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindFunction, KindClass, KindConst, KindVariable, KindInterface, KindType:
		return k, nil
	}
	return "", fmt.Errorf("unknown kind %q (valid: function, class, const, variable, interface, type)", s)
}

// PatternKind is the kind of a structural pattern.
type PatternKind string

const (
	PatternFunction PatternKind = "function"
	PatternClass    PatternKind = "class"
)

// StructuralPattern is a normalized record of one exported function or class.
type StructuralPattern struct {
	File         string      `json:"file"`
	Name         string      `json:"name"`
	Kind         PatternKind `json:"kind"`
	StartLine    int         `json:"start_line"`
	EndLine      int         `json:"end_line"`
	Imports      []string    `json:"imports,omitempty"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Signature    string      `json:"signature"`
	Language     Language    `json:"language"`
}

// Issue types. The first six are the signal categories.
const (
	IssueMagicLiteral       = "magic-literal"
	IssueBooleanTrap        = "boolean-trap"
	IssueAmbiguousName      = "ambiguous-name"
	IssueUndocumentedExport = "undocumented-export"
	IssueImplicitSideEffect = "implicit-side-effect"
	IssueDeepCallback       = "deep-callback"
	IssueDeadCode           = "dead-code"
	IssuePoorNaming         = "poor-naming"
	IssueConventionMix      = "convention-mix"
)

// Issue categories.
const (
	CategoryNaming          = "naming"
	CategoryClarity         = "clarity"
	CategoryAPIDesign       = "api-design"
	CategoryDocumentation   = "documentation"
	CategoryPredictability  = "predictability"
	CategoryComplexity      = "complexity"
	CategoryMaintainability = "maintainability"
)

// Issue represents a problem found during analysis.
type Issue struct {
	Type       string   `json:"type"`
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	File       string   `json:"file"`
	Line       int      `json:"line,omitempty"`
	Column     int      `json:"column,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Snippet    string   `json:"snippet,omitempty"`
}

// NamingIssue is a naming-convention violation for a single identifier.
type NamingIssue struct {
	Kind       string   `json:"kind"`
	Identifier string   `json:"identifier"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
	Suggestion string   `json:"suggestion"`
}

// ToIssue converts a naming issue into the generic issue shape.
func (n NamingIssue) ToIssue() Issue {
	var msg string
	switch n.Kind {
	case IssueConventionMix:
		msg = fmt.Sprintf("%q mixes naming conventions", n.Identifier)
	default:
		msg = fmt.Sprintf("%q does not follow the naming convention", n.Identifier)
	}
	return Issue{
		Type:       n.Kind,
		Category:   n.Category,
		Severity:   n.Severity,
		File:       n.File,
		Line:       n.Line,
		Column:     n.Column,
		Identifier: n.Identifier,
		Message:    msg,
		Suggestion: n.Suggestion,
	}
}

// Signal counter keys.
const (
	SignalMagicLiterals       = "magicLiterals"
	SignalBooleanTraps        = "booleanTraps"
	SignalAmbiguousNames      = "ambiguousNames"
	SignalUndocumentedExports = "undocumentedExports"
	SignalImplicitSideEffects = "implicitSideEffects"
	SignalDeepCallbacks       = "deepCallbacks"
	SignalOverloadedSymbols   = "overloadedSymbols"
	SignalDeadCode            = "deadCode"
	SignalTotalSymbols        = "totalSymbols"
	SignalTotalExports        = "totalExports"
)

// RiskCategories lists the six signal categories in tie-break priority order.
var RiskCategories = []string{
	SignalImplicitSideEffects,
	SignalDeepCallbacks,
	SignalBooleanTraps,
	SignalMagicLiterals,
	SignalAmbiguousNames,
	SignalUndocumentedExports,
}

// Signals counts findings per signal key.
type Signals map[string]int

// NewSignals returns a map with every known key present and zeroed.
func NewSignals() Signals {
	s := Signals{}
	for _, k := range []string{
		SignalMagicLiterals, SignalBooleanTraps, SignalAmbiguousNames,
		SignalUndocumentedExports, SignalImplicitSideEffects, SignalDeepCallbacks,
		SignalOverloadedSymbols, SignalDeadCode, SignalTotalSymbols, SignalTotalExports,
	} {
		s[k] = 0
	}
	return s
}

// Merge adds other into s key by key.
func (s Signals) Merge(other Signals) {
	for k, v := range other {
		s[k] += v
	}
}

// Clone returns an independent copy of s.
func (s Signals) Clone() Signals {
	c := make(Signals, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	File     string   `json:"file"`
	Language Language `json:"language"`
	Issues   []Issue  `json:"issues"`
	Signals  Signals  `json:"signals"`
}

// Rating is the whole-repository risk bucket.
type Rating string

const (
	RatingMinimal  Rating = "minimal"
	RatingLow      Rating = "low"
	RatingModerate Rating = "moderate"
	RatingHigh     Rating = "high"
	RatingSevere   Rating = "severe"
)

// Ratings lists the bands from best to worst.
var Ratings = []Rating{RatingMinimal, RatingLow, RatingModerate, RatingHigh, RatingSevere}

// Rank returns the band index (0 = minimal), or -1 if unknown.
func (r Rating) Rank() int {
	for i, band := range Ratings {
		if band == r {
			return i
		}
	}
	return -1
}

// ParseRating converts a user-supplied string into a Rating.
func ParseRating(s string) (Rating, error) {
	r := Rating(strings.ToLower(strings.TrimSpace(s)))
	if r.Rank() < 0 {
		return "", fmt.Errorf("unknown rating %q (valid: minimal, low, moderate, high, severe)", s)
	}
	return r, nil
}

// TopRiskNone is reported when no signal category has any finding.
const TopRiskNone = "none"

// Summary holds whole-repository totals. Counts are computed before
// severity filtering.
type Summary struct {
	FilesAnalyzed int    `json:"files_analyzed"`
	TotalSignals  int    `json:"total_signals"`
	Critical      int    `json:"critical"`
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Info          int    `json:"info"`
	TopRisk       string `json:"top_risk"`
	Rating        Rating `json:"rating"`
	Score         int    `json:"score"`
}

// DuplicateCluster is a group of patterns sharing a base name.
type DuplicateCluster struct {
	BaseName string   `json:"base_name"`
	Members  []string `json:"members"`
	Files    []string `json:"files"`
}

// DuplicatePair is a pair of patterns whose similarity exceeds the threshold.
type DuplicatePair struct {
	First      string  `json:"first"`
	FirstFile  string  `json:"first_file"`
	Second     string  `json:"second"`
	SecondFile string  `json:"second_file"`
	Similarity float64 `json:"similarity"`
}

// Duplicates collects both duplicate-detection strategies.
type Duplicates struct {
	Patterns int                `json:"patterns"`
	Clusters []DuplicateCluster `json:"clusters,omitempty"`
	Pairs    []DuplicatePair    `json:"pairs,omitempty"`
}

// Recommendation is one actionable line, ordered by estimated impact.
type Recommendation struct {
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Impact   float64 `json:"impact"`
}

// Skip reasons.
const (
	SkipUnsupported = "unsupported-language"
	SkipUnreadable  = "unreadable-file"
	SkipParseError  = "parse-failure"
)

// SkippedFile records a file that contributed nothing to the report.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

// Report is the final output of one scan.
type Report struct {
	Summary          Summary          `json:"summary"`
	Results          []FileResult     `json:"results"`
	AggregateSignals Signals          `json:"aggregate_signals"`
	Duplicates       Duplicates       `json:"duplicates"`
	Recommendations  []Recommendation `json:"recommendations"`
	Skipped          []SkippedFile    `json:"skipped,omitempty"`
	MinSeverity      Severity         `json:"min_severity"`
	Timestamp        time.Time        `json:"timestamp"`
	CommitHash       string           `json:"commit_hash,omitempty"`
}
