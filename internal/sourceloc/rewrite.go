package sourceloc

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Token is a class token found in a class attribute.
type Token struct {
	Attr  Attr
	Start int // offset of the class token
	End   int
}

// FindToken finds class as a whole token in a class attribute starting within
// TokenWindow lines of line, nearest line first.
func FindToken(text string, line int, class string) (Token, error) {
	lines := newLineIndex(text)
	if line < 1 || line > lines.count() {
		return Token{}, apperr.NotFound("line %d", line)
	}

	from, to := lines.window(line, TokenWindow)
	var best Token
	bestDist := -1
	for _, a := range ClassAttrs(text, from, to) {
		s, ok := findClass(a.Value, class)
		if !ok {
			continue
		}
		dist := abs(lines.lineOf(a.Start+s.start) - line)
		if bestDist < 0 || dist < bestDist {
			best = Token{Attr: a, Start: a.Start + s.start, End: a.Start + s.end}
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return Token{}, apperr.NotFound("class %q near line %d", class, line)
	}
	return best, nil
}

// FindAttr returns the class attribute nearest to line within TokenWindow.
func FindAttr(text string, line int) (Attr, error) {
	lines := newLineIndex(text)
	if line < 1 || line > lines.count() {
		return Attr{}, apperr.NotFound("line %d", line)
	}

	from, to := lines.window(line, TokenWindow)
	var best Attr
	bestDist := -1
	for _, a := range ClassAttrs(text, from, to) {
		dist := abs(lines.lineOf(a.Start) - line)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = a, dist
		}
	}
	if bestDist < 0 {
		return Attr{}, apperr.NotFound("class attribute near line %d", line)
	}
	return best, nil
}

// ReplaceClassInstance replaces the class oldClass on the element identified
// by h with newClass. An empty newClass removes it. When h.Identifier is empty
// the old class itself identifies the element.
func ReplaceClassInstance(text string, h Hints, oldClass, newClass string) (string, Location, error) {
	if h.Identifier == "" && h.EID == "" {
		h.Identifier = oldClass
	}
	loc, err := Locate(text, h)
	if err != nil {
		return "", Location{}, err
	}
	tok, err := FindToken(text, loc.Line, oldClass)
	if err != nil {
		return "", Location{}, err
	}

	if newClass != "" {
		return text[:tok.Start] + newClass + text[tok.End:], loc, nil
	}

	// drop the token and one separating space
	start, end := tok.Start, tok.End
	switch {
	case end < tok.Attr.End && text[end] == ' ':
		end++
	case start > tok.Attr.Start && text[start-1] == ' ':
		start--
	}
	return text[:start] + text[end:], loc, nil
}

// InsertClass appends class to the class attribute of the element identified
// by h. A class that is already present leaves text unchanged.
func InsertClass(text string, h Hints, class string) (string, Location, error) {
	class = strings.TrimSpace(class)
	if class == "" {
		return "", Location{}, apperr.Unparsable("class", class)
	}
	loc, err := Locate(text, h)
	if err != nil {
		return "", Location{}, err
	}
	attr, err := FindAttr(text, loc.Line)
	if err != nil {
		return "", Location{}, err
	}
	if _, ok := findClass(attr.Value, class); ok {
		return text, loc, nil
	}

	insert := class
	if strings.TrimSpace(attr.Value) != "" && !isSpace(text[attr.End-1]) {
		insert = " " + class
	}
	return text[:attr.End] + insert + text[attr.End:], loc, nil
}

// RewriteComponent replaces a whole class string in a component definition.
// The old string must occur exactly once, or exactly once near context;
// otherwise the rewrite is refused and text is returned unchanged.
func RewriteComponent(text, oldClasses, newClasses, context string) (string, error) {
	oldClasses = strings.TrimSpace(oldClasses)
	if oldClasses == "" {
		return text, apperr.NotFound("empty class string")
	}

	matches := occurrences(text, oldClasses)
	if context != "" {
		lines := newLineIndex(text)
		var near []int
		for _, off := range matches {
			from, to := lines.window(lines.lineOf(off), TokenWindow)
			if strings.Contains(text[from:to], context) {
				near = append(near, off)
			}
		}
		matches = near
	}

	switch len(matches) {
	case 0:
		return text, apperr.NotFound("class string %q", oldClasses)
	case 1:
		off := matches[0]
		return text[:off] + newClasses + text[off+len(oldClasses):], nil
	}
	return text, apperr.Ambiguous(oldClasses, "component source", len(matches))
}

// occurrences returns the offsets of s where it is not part of a longer class token.
func occurrences(text, s string) []int {
	var out []int
	for from := 0; from <= len(text)-len(s); {
		i := strings.Index(text[from:], s)
		if i < 0 {
			break
		}
		off := from + i
		end := off + len(s)
		if (off == 0 || !isClassChar(text[off-1])) && (end == len(text) || !isClassChar(text[end])) {
			out = append(out, off)
		}
		from = off + 1
	}
	return out
}

func isClassChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_:/[].%#!", c) >= 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
