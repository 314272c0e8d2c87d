package naming

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// SplitWords splits an identifier into words on separators and case changes.
// Digit runs stay attached to the preceding word ("var2" is one word).
func SplitWords(name string) []string {
	var words []string
	for _, seg := range strings.FieldsFunc(name, isSeparator) {
		words = append(words, splitSegment(seg)...)
	}
	return words
}

// splitSegment splits a separator-free segment on case changes.
func splitSegment(seg string) []string {
	var words []string
	for _, part := range camelcase.Split(seg) {
		if !hasAlnum(part) {
			continue
		}
		if isDigits(part) && len(words) > 0 {
			words[len(words)-1] += part
			continue
		}
		words = append(words, part)
	}
	return words
}

// ToSnakeCase converts name to snake_case. Underscore runs, including
// leading and trailing ones, are kept as written.
func ToSnakeCase(name string) string {
	segs := strings.Split(normalizeSeparators(name), "_")
	for i, seg := range segs {
		words := splitSegment(seg)
		for j, w := range words {
			words[j] = strings.ToLower(w)
		}
		segs[i] = strings.Join(words, "_")
	}
	return strings.Join(segs, "_")
}

// ToUpperSnakeCase converts name to UPPER_SNAKE_CASE.
func ToUpperSnakeCase(name string) string {
	return strings.ToUpper(ToSnakeCase(name))
}

// ToCamelCase converts name to camelCase, keeping acronyms intact.
func ToCamelCase(name string) string {
	prefix, core := splitPrefix(name)
	words := SplitWords(core)
	if len(words) == 0 {
		return name
	}
	keepAcronyms := hasLower(core)
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titleWord(w, keepAcronyms))
	}
	return b.String()
}

// ToPascalCase converts name to PascalCase, keeping acronyms intact.
func ToPascalCase(name string) string {
	prefix, core := splitPrefix(name)
	words := SplitWords(core)
	if len(words) == 0 {
		return name
	}
	keepAcronyms := hasLower(core)
	var b strings.Builder
	b.WriteString(prefix)
	for _, w := range words {
		b.WriteString(titleWord(w, keepAcronyms))
	}
	return b.String()
}

// ToMixedCaps converts name to Go style, preserving whether it is exported.
func ToMixedCaps(name string) string {
	_, core := splitPrefix(name)
	if core != "" && unicode.IsUpper([]rune(core)[0]) {
		return ToPascalCase(core)
	}
	return ToCamelCase(core)
}

// IsAllUpper reports whether name has letters and none of them are lowercase.
func IsAllUpper(name string) bool {
	return hasLetter(name) && !hasLower(name)
}

func titleWord(w string, keepAcronyms bool) string {
	if keepAcronyms && len(w) > 1 && !hasLower(w) {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// splitPrefix separates leading underscores and dollar signs.
func splitPrefix(name string) (string, string) {
	i := strings.IndexFunc(name, func(r rune) bool { return r != '_' && r != '$' })
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

func normalizeSeparators(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '.' {
			return '_'
		}
		return r
	}, name)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.' || r == '$'
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func hasLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
