package scanner

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// stringValue returns the decoded contents of a string literal node.
func stringValue(n *sitter.Node, src []byte) string {
	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		part := n.NamedChild(i)
		switch part.Type() {
		case "string_fragment":
			b.WriteString(part.Content(src))
		case "escape_sequence":
			b.WriteString(unescape(part.Content(src)))
		}
	}
	return b.String()
}

func unescape(seq string) string {
	switch seq {
	case `\'`:
		return "'"
	case `\"`:
		return `"`
	}
	if s, err := strconv.Unquote(`"` + seq + `"`); err == nil {
		return s
	}
	return strings.TrimPrefix(seq, `\`)
}

// literalValue converts a literal argument into the text used as a CSS
// value. Numbers become pixel lengths. ok is false for anything that is not
// a string, number, bigint or boolean literal.
func literalValue(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "string":
		return stringValue(n, src), true
	case "number":
		return numberValue(n.Content(src)) + "px", true
	case "true", "false":
		return n.Type(), true
	}
	return "", false
}

// numberValue normalizes a numeric literal the way the runtime would print
// it: 0x10 is 16, 1.50 is 1.5, 10n is 10.
func numberValue(text string) string {
	text = strings.ReplaceAll(strings.TrimSuffix(text, "n"), "_", "")
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return text
}
