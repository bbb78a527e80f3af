package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrInvalidCSS is returned by Validate for stylesheets the CSS lexer rejects.
var ErrInvalidCSS = errors.New("invalid css")

// Validate lexes a stylesheet and checks that strings, urls and braces are
// well formed.
func Validate(stylesheet string) error {
	lexer := css.NewLexer(parse.NewInputString(stylesheet))
	depth := 0
	line := 1

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("%w: line %d: %v", ErrInvalidCSS, line, err)
			}
			if depth != 0 {
				return fmt.Errorf("%w: %d unclosed block(s)", ErrInvalidCSS, depth)
			}
			return nil
		case css.BadStringToken:
			return fmt.Errorf("%w: line %d: unterminated string", ErrInvalidCSS, line)
		case css.BadURLToken:
			return fmt.Errorf("%w: line %d: malformed url", ErrInvalidCSS, line)
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: line %d: unexpected }", ErrInvalidCSS, line)
			}
		}
		line += strings.Count(string(text), "\n")
	}
}

// Classes returns the class names used in the selectors of a stylesheet,
// unescaped and in order of first appearance. Class names inside
// declarations and keyframes are ignored.
func Classes(stylesheet string) []string {
	lexer := css.NewLexer(parse.NewInputString(stylesheet))

	var classes []string
	seen := make(map[string]bool)
	// blocks records for each open block whether it holds rules (the
	// stylesheet and at-rule bodies) rather than declarations.
	blocks := []bool{true}
	atRule := false

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return classes
		case css.AtKeywordToken:
			atRule = true
		case css.SemicolonToken:
			atRule = false
		case css.LeftBraceToken:
			blocks = append(blocks, atRule)
			atRule = false
		case css.RightBraceToken:
			if len(blocks) > 1 {
				blocks = blocks[:len(blocks)-1]
			}
		case css.DelimToken:
			if !blocks[len(blocks)-1] || atRule || string(text) != "." {
				continue
			}
			if next, ident := lexer.Next(); next == css.IdentToken {
				name := unescape(string(ident))
				if !seen[name] {
					seen[name] = true
					classes = append(classes, name)
				}
			}
		}
	}
}

// unescape decodes CSS escapes: \: is ":" and \31 is "1".
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[j])
			i = j
			continue
		}
		code, _ := strconv.ParseUint(s[i+1:j], 16, 32)
		b.WriteRune(rune(code))
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
