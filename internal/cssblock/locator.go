// Package cssblock locates brace-delimited blocks in CSS-like text.
//
// A block is found by searching for its head (a selector or at-rule prelude)
// followed by "{" and then counting braces forward to the matching "}". Brace
// counting skips comments and quoted strings, so nested rules inside the target
// block never end the scan early. Everything outside a located block can be
// spliced back byte-for-byte.
package cssblock

import (
	"regexp"
	"strings"
	"sync"
)

// Span holds the offsets of a block's opening and matching closing brace.
type Span struct {
	Open  int // index of '{'
	Close int // index of the matching '}'
}

// Body returns the text between the braces.
func (s Span) Body(text string) string {
	return text[s.Open+1 : s.Close]
}

// BodyStart returns the offset of the first byte after '{'.
func (s Span) BodyStart() int {
	return s.Open + 1
}

// Shift moves both offsets by delta (used when a span was found inside a body).
func (s Span) Shift(delta int) Span {
	return Span{Open: s.Open + delta, Close: s.Close + delta}
}

// Head patterns used across scanners and mutators. They are regular
// expression fragments, not literal selectors.
var (
	// RootPattern matches the default-theme block head.
	RootPattern = HeadPattern(":root")
	// ThemePattern matches @theme and @theme <modifiers> heads.
	ThemePattern = `@theme(?:\s+[\w-]+)*`
	// DarkMediaPattern matches a prefers-color-scheme: dark media query head.
	DarkMediaPattern = `@media\s*\(\s*prefers-color-scheme\s*:\s*dark\s*\)`
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*regexp.Regexp{}
)

// HeadPattern escapes a literal selector/head for use with FindPattern.
func HeadPattern(head string) string {
	return regexp.QuoteMeta(head)
}

// headRegexp compiles (once) the pattern `head\s*\{`.
func headRegexp(pattern string) (*regexp.Regexp, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if re, ok := compiled[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(`(?:` + pattern + `)\s*\{`)
	if err != nil {
		return nil, err
	}
	compiled[pattern] = re
	return re, nil
}

// Find returns the first block introduced by the literal head.
func Find(text, head string) (Span, bool) {
	spans := FindPattern(text, HeadPattern(head), true)
	if len(spans) == 0 {
		return Span{}, false
	}
	return spans[0], true
}

// FindOutside returns the first block introduced by the literal head that is
// not nested in a block whose head matches the pattern exclude.
func FindOutside(text, head, exclude string) (Span, bool) {
	outer := FindPattern(text, exclude, false)
	for _, span := range FindAll(text, head) {
		if !nestedInAny(outer, span) {
			return span, true
		}
	}
	return Span{}, false
}

func nestedInAny(outer []Span, s Span) bool {
	for _, o := range outer {
		if s.Open > o.Open && s.Close < o.Close {
			return true
		}
	}
	return false
}

// FindAll returns every block introduced by the literal head, in source order.
func FindAll(text, head string) []Span {
	return FindPattern(text, HeadPattern(head), false)
}

// FindFirstPattern is FindPattern with firstOnly set, returning a single span.
func FindFirstPattern(text, pattern string) (Span, bool) {
	spans := FindPattern(text, pattern, true)
	if len(spans) == 0 {
		return Span{}, false
	}
	return spans[0], true
}

// FindPattern returns blocks whose head matches the regular expression
// fragment pattern. Matches inside comments, matches glued to a preceding
// selector character (e.g. "html:root" for ":root") and unbalanced blocks are
// ignored. An invalid pattern yields no spans.
func FindPattern(text, pattern string, firstOnly bool) []Span {
	re, err := headRegexp(pattern)
	if err != nil {
		return nil
	}

	comments := commentRanges(text)
	var spans []Span
	for _, m := range re.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		if insideAny(comments, start) || !boundaryBefore(text, start) {
			continue
		}
		open := end - 1
		closeIdx := MatchClose(text, open)
		if closeIdx < 0 {
			continue
		}
		spans = append(spans, Span{Open: open, Close: closeIdx})
		if firstOnly {
			break
		}
	}
	return spans
}

// Within searches for the literal head inside the body of outer and returns the
// span in the coordinates of text.
func Within(text string, outer Span, head string) (Span, bool) {
	inner, ok := Find(outer.Body(text), head)
	if !ok {
		return Span{}, false
	}
	return inner.Shift(outer.BodyStart()), true
}

// MatchClose returns the index of the '}' matching the '{' at open, or -1.
func MatchClose(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return -1
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch c := text[i]; c {
		case '/':
			if i+1 < len(text) && text[i+1] == '*' {
				end := indexFrom(text, "*/", i+2)
				if end < 0 {
					return -1
				}
				i = end + 1
			}
		case '"', '\'':
			i = skipString(text, i, c)
			if i < 0 {
				return -1
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Splice replaces the body of span with body and returns the new text.
func Splice(text string, span Span, body string) string {
	return text[:span.Open+1] + body + text[span.Close:]
}

// boundaryBefore reports whether the head match at start begins a selector
// rather than continuing one.
func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	switch text[start-1] {
	case ' ', '\t', '\n', '\r', '\f', '{', '}', ';', '/', ',':
		return true
	}
	return false
}

// skipString returns the index of the closing quote of the string opened at i.
func skipString(text string, i int, quote byte) int {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			// Unterminated string: CSS ends it at the newline.
			return j
		}
	}
	return -1
}

type byteRange struct{ start, end int }

// commentRanges returns the [start,end) ranges of every /* */ comment.
func commentRanges(text string) []byteRange {
	var out []byteRange
	for i := 0; i+1 < len(text); i++ {
		if text[i] != '/' || text[i+1] != '*' {
			continue
		}
		end := indexFrom(text, "*/", i+2)
		if end < 0 {
			out = append(out, byteRange{i, len(text)})
			break
		}
		out = append(out, byteRange{i, end + 2})
		i = end + 1
	}
	return out
}

func insideAny(ranges []byteRange, pos int) bool {
	for _, r := range ranges {
		if pos >= r.start && pos < r.end {
			return true
		}
	}
	return false
}

func indexFrom(text, sub string, from int) int {
	if from > len(text) {
		return -1
	}
	i := strings.Index(text[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}
