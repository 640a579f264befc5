package tokens

import (
	"regexp"
	"strings"
)

// SassVariable is one `$name: value;` declaration.
type SassVariable struct {
	Name       string // without the leading "$"
	Value      string // without !default
	Default    bool   // declared with !default
	Start      int    // offset of "$"
	ValueStart int
	ValueEnd   int
	End        int // offset just past ';'
}

// sassDecl matches a variable declaration at the start of a line. The value may
// span lines; it ends at the first ';'.
var sassDecl = regexp.MustCompile(`(?m)^[ \t]*(\$([A-Za-z_][\w-]*))[ \t]*:[ \t]*([^;]*?)[ \t]*(!default)?[ \t]*;`)

// SassVariables returns every top-level Sass variable declaration in source
// order. Locals inside rules, mixins and functions and declarations inside
// comments are not matched.
func SassVariables(text string) []SassVariable {
	var out []SassVariable
	depth := braceDepth(text)
	for _, m := range sassDecl.FindAllStringSubmatchIndex(text, -1) {
		if depth(m[2]) != 0 {
			continue
		}
		v := SassVariable{
			Name:       text[m[4]:m[5]],
			Value:      text[m[6]:m[7]],
			Default:    m[8] >= 0,
			Start:      m[2],
			ValueStart: m[6],
			ValueEnd:   m[7],
			End:        m[1],
		}
		out = append(out, v)
	}
	return out
}

// FindSassVariables returns the declarations of one variable; name may carry
// the leading "$".
func FindSassVariables(text, name string) []SassVariable {
	name = strings.TrimPrefix(name, "$")
	var out []SassVariable
	for _, v := range SassVariables(text) {
		if v.Name == name {
			out = append(out, v)
		}
	}
	return out
}

// braceDepth returns a function reporting the brace nesting at an offset.
// Offsets must be passed in increasing order. An offset inside a comment or a
// string reports -1.
func braceDepth(text string) func(offset int) int {
	i, depth := 0, 0
	return func(offset int) int {
		for ; i < offset && i < len(text); i++ {
			switch c := text[i]; c {
			case '/':
				if i+1 >= len(text) {
					continue
				}
				switch text[i+1] {
				case '/':
					i = lineEnd(text, i)
				case '*':
					if end := strings.Index(text[i+2:], "*/"); end >= 0 {
						i += end + 3
					} else {
						i = len(text)
					}
				}
			case '"', '\'':
				end := strings.IndexByte(text[i+1:lineEnd(text, i)], c)
				if end >= 0 {
					i += end + 1
				}
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
			}
		}
		if i > offset {
			return -1
		}
		return depth
	}
}

// lineEnd returns the offset of the newline ending the line at i, or len(text).
func lineEnd(text string, i int) int {
	if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
		return i + nl
	}
	return len(text)
}
