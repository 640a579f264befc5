// Package sourceloc maps a rendered element back to a line of component
// source and edits the class list found there.
//
// Location is heuristic and line based: the element is identified by a class
// substring that starts and ends on class token boundaries, searched first in a small window around a line hint and then in
// the whole file. The class attribute itself may be wrapped, so class tokens
// are searched in a second, smaller window around the located line.
package sourceloc

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

const (
	// HintWindow is how many lines around the hint are searched first.
	HintWindow = 5
	// TokenWindow is how many lines around the located line hold the class token.
	TokenWindow = 2
)

// Hints identify an element in a source file.
type Hints struct {
	Identifier string // class substring rendered on the element
	Line       int    // 1-based line hint, 0 when unknown
	Context    string // text that must appear within TokenWindow lines
	EID        string // marker id set by Mark; takes precedence over the rest
}

// Location is a located source line.
type Location struct {
	Line      int `json:"line"`   // 1-based
	Column    int `json:"column"` // 1-based column of the identifier
	LineStart int `json:"-"`
	LineEnd   int `json:"-"`
}

// Locator finds the line rendering an element.
type Locator interface {
	Locate(text string, h Hints) (Location, error)
}

// LineLocator is the default text-search Locator.
type LineLocator struct{}

// Locate implements Locator.
func (LineLocator) Locate(text string, h Hints) (Location, error) {
	return Locate(text, h)
}

// Locate searches the hint window nearest line first, then the whole file.
// A whole-file search that finds more than one line is ambiguous. A marked
// element is found by its eid alone.
func Locate(text string, h Hints) (Location, error) {
	if h.EID != "" {
		return FindMarked(text, h.EID)
	}
	if strings.TrimSpace(h.Identifier) == "" {
		return Location{}, apperr.NotFound("empty element identifier")
	}
	lines := newLineIndex(text)

	if h.Line > 0 {
		for _, n := range nearestFirst(h.Line, HintWindow, lines.count()) {
			if lines.matches(text, n, h) {
				return lines.location(text, n, h.Identifier), nil
			}
		}
	}

	var found []int
	for n := 1; n <= lines.count(); n++ {
		if lines.matches(text, n, h) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return Location{}, apperr.NotFound("element %q", h.Identifier)
	case 1:
		return lines.location(text, found[0], h.Identifier), nil
	}
	return Location{}, apperr.Ambiguous(h.Identifier, "source", len(found))
}

// nearestFirst lists lines center, center-1, center+1, ... within radius.
func nearestFirst(center, radius, max int) []int {
	var out []int
	if center >= 1 && center <= max {
		out = append(out, center)
	}
	for d := 1; d <= radius; d++ {
		if n := center - d; n >= 1 && n <= max {
			out = append(out, n)
		}
		if n := center + d; n >= 1 && n <= max {
			out = append(out, n)
		}
	}
	return out
}

// lineIndex holds the start offset of every line.
type lineIndex struct {
	starts []int
	size   int
}

func newLineIndex(text string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts, size: len(text)}
}

func (l lineIndex) count() int {
	return len(l.starts)
}

// bounds returns the [start, end) offsets of 1-based line n, without the newline.
func (l lineIndex) bounds(n int) (int, int) {
	start := l.starts[n-1]
	end := l.size
	if n < len(l.starts) {
		end = l.starts[n] - 1
	}
	return start, end
}

// window returns the offsets spanning lines n-radius .. n+radius.
func (l lineIndex) window(n, radius int) (int, int) {
	first := max(1, n-radius)
	last := min(l.count(), n+radius)
	start, _ := l.bounds(first)
	_, end := l.bounds(last)
	return start, end
}

// lineOf returns the 1-based line containing offset.
func (l lineIndex) lineOf(offset int) int {
	lo, hi := 0, len(l.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

func (l lineIndex) matches(text string, n int, h Hints) bool {
	start, end := l.bounds(n)
	if len(occurrences(text[start:end], h.Identifier)) == 0 {
		return false
	}
	if h.Context == "" {
		return true
	}
	ws, we := l.window(n, TokenWindow)
	return strings.Contains(text[ws:we], h.Context)
}

func (l lineIndex) location(text string, n int, identifier string) Location {
	start, end := l.bounds(n)
	col := findColumn(text[start:end], identifier)
	return Location{Line: n, Column: col, LineStart: start, LineEnd: end}
}

// findColumn locates the 1-based column where the identifier starts, preferring
// a match inside a class attribute.
func findColumn(line, identifier string) int {
	for _, a := range ClassAttrs(line, 0, len(line)) {
		if offs := occurrences(a.Value, identifier); len(offs) > 0 {
			return a.Start + offs[0] + 1
		}
	}
	if offs := occurrences(line, identifier); len(offs) > 0 {
		return offs[0] + 1
	}
	return 0
}
