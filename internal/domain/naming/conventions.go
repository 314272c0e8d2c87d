package naming

import (
	"regexp"

	"github.com/aiready/aiready/internal/domain"
)

// Casing names the style used when suggesting a rewrite.
type Casing string

const (
	CasingSnake      Casing = "snake_case"
	CasingUpperSnake Casing = "UPPER_SNAKE_CASE"
	CasingCamel      Casing = "camelCase"
	CasingPascal     Casing = "PascalCase"
	CasingMixedCaps  Casing = "MixedCaps"
)

// Apply rewrites name in the casing style.
func (c Casing) Apply(name string) string {
	switch c {
	case CasingSnake:
		return ToSnakeCase(name)
	case CasingUpperSnake:
		return ToUpperSnakeCase(name)
	case CasingCamel:
		return ToCamelCase(name)
	case CasingPascal:
		return ToPascalCase(name)
	case CasingMixedCaps:
		return ToMixedCaps(name)
	default:
		return name
	}
}

// Convention is the naming table for one language.
type Convention struct {
	Class    *regexp.Regexp
	Function *regexp.Regexp
	Variable *regexp.Regexp
	Constant *regexp.Regexp

	// ForeignShape matches names written in another language's style.
	ForeignShape *regexp.Regexp

	Exceptions    []string
	ExemptPattern *regexp.Regexp

	ClassCasing    Casing
	FunctionCasing Casing
	ConstantCasing Casing
}

// IsExempt reports whether name is excluded from checking.
func (c Convention) IsExempt(name string) bool {
	for _, e := range c.Exceptions {
		if e == name {
			return true
		}
	}
	return c.ExemptPattern != nil && c.ExemptPattern.MatchString(name)
}

// Conventions maps each language to its naming table.
type Conventions map[domain.Language]Convention

// DefaultConventions returns a fresh table set for every supported language.
func DefaultConventions() Conventions {
	script := scriptConvention()
	return Conventions{
		domain.LanguagePython:     pythonConvention(),
		domain.LanguageJavaScript: script,
		domain.LanguageTypeScript: script,
		domain.LanguageGo:         goConvention(),
	}
}

func pythonConvention() Convention {
	return Convention{
		Class:        regexp.MustCompile(`^_?[A-Z][a-zA-Z0-9]*$`),
		Function:     regexp.MustCompile(`^_{0,2}[a-z][a-z0-9_]*$`),
		Variable:     regexp.MustCompile(`^_{0,2}[a-z][a-z0-9_]*$`),
		Constant:     regexp.MustCompile(`^_?[A-Z][A-Z0-9_]*$`),
		ForeignShape: regexp.MustCompile(`^_*[a-z].*[A-Z]`),
		Exceptions: []string{
			"_", "setUp", "tearDown", "setUpClass", "tearDownClass",
			"setUpModule", "tearDownModule", "maxDiff",
		},
		ExemptPattern:  regexp.MustCompile(`^__\w+__$`),
		ClassCasing:    CasingPascal,
		FunctionCasing: CasingSnake,
		ConstantCasing: CasingUpperSnake,
	}
}

func scriptConvention() Convention {
	return Convention{
		Class:          regexp.MustCompile(`^[_$]?[A-Z][a-zA-Z0-9]*$`),
		Function:       regexp.MustCompile(`^[_$]*[a-z][a-zA-Z0-9]*$`),
		Variable:       regexp.MustCompile(`^[_$]*[a-zA-Z][a-zA-Z0-9]*$`),
		Constant:       regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`),
		ForeignShape:   regexp.MustCompile(`^[_$]*[a-z][a-z0-9]*_[a-z0-9_]*$`),
		Exceptions:     []string{"_", "$", "__dirname", "__filename", "module", "exports"},
		ClassCasing:    CasingPascal,
		FunctionCasing: CasingCamel,
		ConstantCasing: CasingUpperSnake,
	}
}

func goConvention() Convention {
	mixedCaps := regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	return Convention{
		Class:          mixedCaps,
		Function:       mixedCaps,
		Variable:       mixedCaps,
		Constant:       mixedCaps,
		ForeignShape:   regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*_[A-Za-z0-9_]*$`),
		Exceptions:     []string{"_", "init", "main"},
		ExemptPattern:  regexp.MustCompile(`^(Test|Benchmark|Example|Fuzz)([A-Z0-9_]|$)`),
		ClassCasing:    CasingMixedCaps,
		FunctionCasing: CasingMixedCaps,
		ConstantCasing: CasingMixedCaps,
	}
}
