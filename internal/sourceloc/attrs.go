package sourceloc

import (
	"regexp"
	"sort"
)

// Attr is the value span of one class attribute (or class helper call).
type Attr struct {
	Start int // offset of the first byte of the value
	End   int // offset just past the value
	Value string
}

// attrPattern finds class values in component source; group 1 is the value.
type attrPattern struct {
	name  string
	regex *regexp.Regexp
}

// Ordered from most specific to least specific.
var attrPatterns = []attrPattern{
	{name: "class attribute in braces", regex: regexp.MustCompile(`\bclass(?:Name)?\s*=\s*\{\s*"([^"]*)"`)},
	{name: "class attribute template literal", regex: regexp.MustCompile("\\bclass(?:Name)?\\s*=\\s*\\{\\s*`([^`]*)`")},
	{name: "class attribute with double quotes", regex: regexp.MustCompile(`\bclass(?:Name)?\s*=\s*"([^"]*)"`)},
	{name: "class attribute with single quotes", regex: regexp.MustCompile(`\bclass(?:Name)?\s*=\s*'([^']*)'`)},
	{name: "class merge helper", regex: regexp.MustCompile(`\b(?:cn|clsx|cx|twMerge)\(\s*["'` + "`" + `]([^"'` + "`" + `]*)["'` + "`" + `]`)},
	{name: "templ.Classes with string", regex: regexp.MustCompile(`templ\.Classes\(\s*"([^"]*)"`)},
	{name: "templ.KV with string", regex: regexp.MustCompile(`templ\.KV\(\s*"([^"]*)"`)},
}

// ClassAttrs returns every class value in text whose value starts in
// [from, to), ordered by offset.
func ClassAttrs(text string, from, to int) []Attr {
	seen := make(map[int]bool)
	var out []Attr
	for _, p := range attrPatterns {
		for _, m := range p.regex.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2], m[3]
			if start < from || start >= to || seen[start] {
				continue
			}
			seen[start] = true
			out = append(out, Attr{Start: start, End: end, Value: text[start:end]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// span is a [start, end) byte range.
type span struct{ start, end int }

// tokenSpans returns the offsets of each whitespace-separated class in value.
func tokenSpans(value string) []span {
	var out []span
	start := -1
	for i := 0; i <= len(value); i++ {
		if i == len(value) || isSpace(value[i]) {
			if start >= 0 {
				out = append(out, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// findClass returns the span of class as a whole token of value.
func findClass(value, class string) (span, bool) {
	for _, s := range tokenSpans(value) {
		if value[s.start:s.end] == class {
			return s, true
		}
	}
	return span{}, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
