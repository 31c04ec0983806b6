// Package matching scores how well a candidate's skills cover a project's required skills.
package matching

import (
	"regexp"
	"strings"
	"unicode"
)

// skillSynonyms maps exact cleaned aliases to their canonical skill.
var skillSynonyms = map[string]string{
	"react.js":   "react",
	"react js":   "react",
	"reactjs":    "react",
	"nest js":    "nestjs",
	"nest.js":    "nestjs",
	"tsql":       "sql",
	"t-sql":      "sql",
	"sql server": "sql",
	"mssql":      "sql",

	"c sharp": "c#",
	"csharp":  "c#",
	".net":    ".net",
	"dotnet":  ".net",
	"net":     ".net",

	"maui":          "maui",
	".net maui":     "maui",
	".net con maui": "maui",
}

// qualifierSuffixes are stripped in this order.
var qualifierSuffixes = []string{" framework", " developer", " dev", " engineer"}

var reParenthesized = regexp.MustCompile(`\(.*?\)`)

// Normalize maps a free-text skill label to a canonical lowercase token.
// It is total and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(label string) string {
	if label == "" {
		return ""
	}

	x := lowerFull(trimSpace(label))
	x = reParenthesized.ReplaceAllString(x, "")
	x = strings.Map(keepSkillRune, x)
	x = strings.Join(strings.FieldsFunc(x, isSpace), " ")

	if canonical, ok := canonicalize(x); ok {
		return canonical
	}

	stripped := x
	for _, suffix := range qualifierSuffixes {
		stripped = strings.TrimSuffix(stripped, suffix)
	}
	stripped = trimSpace(stripped)

	// A stripped qualifier can expose an alias ("react.js developer") or
	// another qualifier, so settle on the fixed point.
	if stripped != x {
		return Normalize(stripped)
	}
	return x
}

// canonicalize applies the synonym table, then the compound-name fallbacks.
// MAUI wins over .NET, which wins over C#.
func canonicalize(x string) (string, bool) {
	if canonical, ok := skillSynonyms[x]; ok {
		return canonical, true
	}

	switch {
	case strings.Contains(x, "maui"):
		return "maui", true
	case strings.Contains(x, ".net"):
		return ".net", true
	case strings.Contains(x, "c#"), strings.Contains(x, "c sharp"):
		return "c#", true
	}
	return "", false
}

// keepSkillRune keeps word runes, whitespace, '.' and '#'; everything else becomes a space.
func keepSkillRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
		return r
	case isSpace(r), r == '.', r == '#':
		return r
	}
	return ' '
}

// NormalizeAll normalizes every label and drops the ones that normalize to nothing.
func NormalizeAll(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if n := Normalize(label); n != "" {
			out = append(out, n)
		}
	}
	return out
}
