package sourceloc

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/yacobolo/designsync/internal/apperr"
)

// MarkerAttr is the hidden attribute that pins an element across edits.
const MarkerAttr = "data-designsync-eid"

var (
	markerValue = regexp.MustCompile(`\s` + regexp.QuoteMeta(MarkerAttr) + `="([^"]*)"`)
	tagName     = regexp.MustCompile(`^<([A-Za-z][\w.:-]*)`)
)

// Mark inserts a marker attribute on the opening tag of the element identified
// by h and returns its eid. An element that is already marked keeps its eid
// and text is returned unchanged.
func Mark(text string, h Hints) (string, string, error) {
	loc, err := Locate(text, h)
	if err != nil {
		return "", "", err
	}
	attr, err := FindAttr(text, loc.Line)
	if err != nil {
		return "", "", err
	}

	open := strings.LastIndexByte(text[:attr.Start], '<')
	if open < 0 {
		return "", "", apperr.NotFound("opening tag of element %q", h.Identifier)
	}
	if m := markerValue.FindStringSubmatch(text[open:attr.Start]); m != nil {
		return text, m[1], nil
	}
	name := tagName.FindStringSubmatchIndex(text[open:])
	if name == nil {
		return "", "", apperr.NotFound("opening tag of element %q", h.Identifier)
	}

	eid := uuid.NewString()
	at := open + name[1]
	return text[:at] + " " + MarkerAttr + `="` + eid + `"` + text[at:], eid, nil
}

// FindMarked returns the location of the element carrying eid.
func FindMarked(text, eid string) (Location, error) {
	needle := MarkerAttr + `="` + eid + `"`
	idx := strings.Index(text, needle)
	if eid == "" || idx < 0 {
		return Location{}, apperr.NotFound("element %s", eid)
	}
	lines := newLineIndex(text)
	n := lines.lineOf(idx)
	start, end := lines.bounds(n)
	return Location{Line: n, Column: idx - start + 1, LineStart: start, LineEnd: end}, nil
}

// Unmark removes the marker attribute carrying eid.
func Unmark(text, eid string) (string, error) {
	needle := " " + MarkerAttr + `="` + eid + `"`
	idx := strings.Index(text, needle)
	if eid == "" || idx < 0 {
		return "", apperr.NotFound("element %s", eid)
	}
	return text[:idx] + text[idx+len(needle):], nil
}
