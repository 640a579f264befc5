// Package mutate rewrites a single design value inside CSS, Sass, design-token
// and component source text.
//
// Every mutator takes the whole file text and returns the whole new text. Only
// the bytes of the targeted value change; a Set* call on a missing target
// fails with apperr.ErrNotFound, and the matching Create*/Append* call inserts
// it instead. Callers write the result back in one operation.
package mutate

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/cssblock"
	"github.com/yacobolo/designsync/internal/tokens"
)

// DefaultIndent is used when a file has no indented line to copy.
const DefaultIndent = "  "

// PropertyName returns name with the leading "--" of a custom property.
func PropertyName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

// SetBlockValue rewrites the value of the custom property name in the first
// block introduced by head outside a dark color-scheme media query. When the block declares name more than once the
// last declaration, the one that applies, is rewritten.
func SetBlockValue(text, head, name, value string) (string, error) {
	name = PropertyName(name)
	if err := checkValue(name, value); err != nil {
		return "", err
	}
	span, ok := findBlock(text, head)
	if !ok {
		return "", apperr.NotFound("block %q", head)
	}
	d, ok := lastDeclaration(span.Body(text), name)
	if !ok {
		return "", apperr.NotFound("%s in block %q", name, head)
	}

	off := span.BodyStart()
	return text[:off+d.ValueStart] + value + text[off+d.ValueEnd:], nil
}

// findBlock skips blocks nested in a dark color-scheme media query, which
// belong to the dark theme.
func findBlock(text, head string) (cssblock.Span, bool) {
	return cssblock.FindOutside(text, head, cssblock.DarkMediaPattern)
}

// CreateBlockValue sets name in the block introduced by head, appending a new
// declaration at the end of the block when name is absent and appending the
// block itself when head is not found.
func CreateBlockValue(text, head, name, value string) (string, error) {
	name = PropertyName(name)
	if err := checkValue(name, value); err != nil {
		return "", err
	}
	span, ok := findBlock(text, head)
	if !ok {
		return appendBlock(text, head, name+": "+value+";"), nil
	}
	body := span.Body(text)
	if _, ok := lastDeclaration(body, name); ok {
		return SetBlockValue(text, head, name, value)
	}

	decl := name + ": " + value + ";"
	off := span.BodyStart()
	trimmed := strings.TrimRight(body, " \t\r\n")

	// empty block: put the declaration on its own line
	if strings.TrimSpace(body) == "" {
		outer := lineIndent(text, span.Open)
		insert := "\n" + outer + indentUnit(text) + decl + "\n" + outer
		return text[:off] + insert + text[span.Close:], nil
	}

	at := off + len(trimmed)
	var insert string
	if needsSemicolon(trimmed) {
		insert = ";"
	}
	if !strings.Contains(body, "\n") {
		insert += " " + decl
	} else {
		insert += "\n" + declIndent(text, span, body) + decl
	}
	return text[:at] + insert + text[at:], nil
}

// lastDeclaration returns the last top-level declaration of name in body.
func lastDeclaration(body, name string) (tokens.Declaration, bool) {
	var found tokens.Declaration
	ok := false
	for _, d := range tokens.Declarations(body) {
		if d.Name == name {
			found, ok = d, true
		}
	}
	return found, ok
}

// checkValue rejects values that would change the block structure.
func checkValue(name, value string) error {
	if strings.TrimSpace(value) == "" || strings.ContainsAny(value, ";{}") {
		return apperr.Unparsable(name+" value", value)
	}
	return nil
}

// needsSemicolon reports whether the last declaration of a trimmed body is
// unterminated.
func needsSemicolon(trimmed string) bool {
	if trimmed == "" || strings.HasSuffix(trimmed, "*/") {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case ';', '{', '}':
		return false
	}
	return true
}

// declIndent copies the indentation of the last declaration in the block, or
// nests one unit deeper than the block head.
func declIndent(text string, span cssblock.Span, body string) string {
	decls := tokens.Declarations(body)
	if len(decls) > 0 {
		return lineIndent(text, span.BodyStart()+decls[len(decls)-1].Start)
	}
	return lineIndent(text, span.Open) + indentUnit(text)
}

func appendBlock(text, head, decl string) string {
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	if strings.TrimSpace(text) != "" {
		b.WriteByte('\n')
	}
	b.WriteString(head + " {\n" + indentUnit(text) + decl + "\n}\n")
	return b.String()
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(text string, pos int) string {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	i := start
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return text[start:i]
}

// indentUnit returns the indentation of the first indented line.
func indentUnit(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && len(trimmed) < len(line) {
			return line[:len(line)-len(trimmed)]
		}
	}
	return DefaultIndent
}
