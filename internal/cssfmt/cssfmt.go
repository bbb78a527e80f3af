// Package cssfmt holds the small text helpers shared by every stage that
// writes CSS: indentation, selector escaping, kebab-casing and custom
// property discovery.
package cssfmt

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// escapePattern matches the characters that must be backslash-escaped
	// when a raw value becomes part of a class selector.
	escapePattern = regexp.MustCompile(`([#&~=>'":!;,.*+|\[\]()/^$%@{}])`)

	// variablePattern captures custom property names referenced via var().
	// Fallback values are left to the next match so nested var() calls are
	// discovered too.
	variablePattern = regexp.MustCompile(`var\(\s*(--[a-zA-Z0-9_-]+)`)
)

// Indent prefixes every non-blank line with two spaces. Blank lines become
// empty and trailing whitespace is trimmed from the result.
func Indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = "  " + line
	}
	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
}

// Escape backslash-escapes selector metacharacters in s.
func Escape(s string) string {
	return escapePattern.ReplaceAllString(s, `\$1`)
}

// VariableNames returns the custom properties referenced in css, in order of
// first appearance and without duplicates.
func VariableNames(css string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range variablePattern.FindAllStringSubmatch(css, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Kebab converts camelCase, PascalCase and snake_case identifiers into
// kebab-case. Runs of digits stay attached to the preceding word.
func Kebab(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) &&
					!strings.HasSuffix(b.String(), "-") {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
