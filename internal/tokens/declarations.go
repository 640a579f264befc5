package tokens

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one custom-property declaration inside a block body.
// Offsets are relative to the body passed to Declarations.
type Declaration struct {
	Name       string // "--shadow-md"
	Value      string // trimmed raw value text
	Start      int    // offset of the first byte of the name
	ValueStart int    // offset of the first byte of the trimmed value
	ValueEnd   int    // offset just past the trimmed value
	End        int    // offset just past the terminating ';' (or the value if none)
}

// Declarations tokenizes a block body and returns its top-level custom-property
// declarations in source order. Regular properties, comments and nested blocks
// are skipped. The lexer emits every input byte as part of some token, so
// running offsets stay exact.
func Declarations(body string) []Declaration {
	lexer := css.NewLexer(parse.NewInputString(body))

	var (
		out       []Declaration
		current   *Declaration
		seenColon bool
		pos       int
		depth     int // brace depth of nested blocks
		parens    int
	)

	finish := func(end, declEnd int) {
		if current != nil && seenColon {
			raw := body[current.ValueStart:end]
			trimmedLeft := strings.TrimLeft(raw, " \t\r\n\f")
			current.ValueStart += len(raw) - len(trimmedLeft)
			current.Value = strings.TrimRight(trimmedLeft, " \t\r\n\f")
			current.ValueEnd = current.ValueStart + len(current.Value)
			current.End = declEnd
			out = append(out, *current)
		}
		current = nil
		seenColon = false
		parens = 0
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			finish(pos, pos)
			break
		}
		start := pos
		pos += len(data)

		switch {
		case tt == css.LeftBraceToken:
			// a nested rule: whatever was being read was a selector
			current = nil
			seenColon = false
			depth++
		case tt == css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		case depth > 0:
			// inside a nested block
		case tt == css.FunctionToken || tt == css.LeftParenthesisToken:
			parens++
		case tt == css.RightParenthesisToken:
			if parens > 0 {
				parens--
			}
		case tt == css.SemicolonToken && parens == 0:
			finish(start, pos)
		case current == nil && isCustomPropertyName(tt, data):
			current = &Declaration{Name: string(data), Start: start}
		case current != nil && !seenColon:
			switch tt {
			case css.ColonToken:
				seenColon = true
				current.ValueStart = pos
			case css.WhitespaceToken, css.CommentToken:
			default:
				current = nil
			}
		}
	}

	return out
}

func isCustomPropertyName(tt css.TokenType, data []byte) bool {
	if tt != css.IdentToken && tt != css.CustomPropertyNameToken {
		return false
	}
	return len(data) > 2 && data[0] == '-' && data[1] == '-'
}
