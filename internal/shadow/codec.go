// Package shadow converts between raw box-shadow declarations, a structured
// layer list and the nested design-token representation of a shadow.
package shadow

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Layer is one shadow effect. Layer order is paint order.
type Layer struct {
	OffsetX string `json:"offsetX"`
	OffsetY string `json:"offsetY"`
	Blur    string `json:"blur"`
	Spread  string `json:"spread"`
	Color   string `json:"color"`
	Inset   bool   `json:"inset"`
}

// None is the formatted form of an empty layer list.
const None = "none"

// colorKeywords are bare color names accepted as a layer's color token.
var colorKeywords = map[string]bool{
	"transparent": true, "currentcolor": true, "inherit": true,
	"black": true, "white": true, "gray": true, "grey": true, "silver": true,
	"red": true, "maroon": true, "orange": true, "yellow": true, "olive": true,
	"lime": true, "green": true, "aqua": true, "cyan": true, "teal": true,
	"blue": true, "navy": true, "fuchsia": true, "magenta": true, "purple": true,
	"pink": true, "brown": true, "gold": true, "indigo": true, "violet": true,
}

// lengthFunctions produce lengths, never colors.
var lengthFunctions = map[string]bool{"calc": true, "min": true, "max": true, "clamp": true}

// ParseLayers parses a raw shadow value into layers. An empty value or "none"
// yields an empty list. A layer with fewer than two or more than four
// positional lengths is rejected with apperr.ErrUnparsable.
func ParseLayers(raw string) ([]Layer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, None) {
		return []Layer{}, nil
	}

	parts := SplitTopLevel(raw, ',')
	layers := make([]Layer, 0, len(parts))
	for _, part := range parts {
		layer, err := parseLayer(part)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// parseLayer parses a single comma-free layer.
func parseLayer(raw string) (Layer, error) {
	fields := Fields(raw)
	var layer Layer

	// inset is written first by convention; CSS also allows it last
	if len(fields) > 0 && strings.EqualFold(fields[0], "inset") {
		layer.Inset = true
		fields = fields[1:]
	} else if n := len(fields); n > 0 && strings.EqualFold(fields[n-1], "inset") {
		layer.Inset = true
		fields = fields[:n-1]
	}

	if n := len(fields); n > 0 && IsColor(fields[n-1]) {
		layer.Color = fields[n-1]
		fields = fields[:n-1]
	} else if n > 0 && IsColor(fields[0]) {
		layer.Color = fields[0]
		fields = fields[1:]
	}

	if len(fields) < 2 || len(fields) > 4 {
		return Layer{}, apperr.Unparsable("shadow layer", strings.TrimSpace(raw))
	}

	positional := [4]string{"0", "0", "0", "0"}
	copy(positional[:], fields)
	layer.OffsetX = positional[0]
	layer.OffsetY = positional[1]
	layer.Blur = positional[2]
	layer.Spread = positional[3]
	return layer, nil
}

// FormatLayers is the inverse of ParseLayers.
func FormatLayers(layers []Layer) string {
	if len(layers) == 0 {
		return None
	}

	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.String()
	}
	return strings.Join(out, ", ")
}

// String formats one layer as `inset? x y blur spread color`.
func (l Layer) String() string {
	parts := make([]string, 0, 6)
	if l.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, orZero(l.OffsetX), orZero(l.OffsetY), orZero(l.Blur), orZero(l.Spread))
	if l.Color != "" {
		parts = append(parts, l.Color)
	}
	return strings.Join(parts, " ")
}

// IsColor reports whether a single token is a color: a function call such as
// rgb(...) or var(...), a #hex value or a known color keyword.
func IsColor(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] == '#' {
		return len(tok) > 1 && isHex(tok[1:])
	}
	if open := strings.IndexByte(tok, '('); open > 0 && strings.HasSuffix(tok, ")") {
		name := strings.ToLower(tok[:open])
		return isIdent(name) && !lengthFunctions[name]
	}
	return colorKeywords[strings.ToLower(tok)]
}

// SplitTopLevel splits s on sep, ignoring separators nested in parentheses.
// Parts are trimmed; empty parts are dropped.
func SplitTopLevel(s string, sep rune) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			parts = append(parts, p)
		}
		current.Reset()
	}

	for _, r := range s {
		switch {
		case r == '(':
			depth++
			current.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			current.WriteRune(r)
		case r == sep && depth == 0:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}

// Fields splits s on whitespace outside parentheses, so "rgb(0 0 0 / 0.1)"
// stays a single field.
func Fields(s string) []string {
	var fields []string
	var current strings.Builder
	depth := 0

	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && isSpace(r):
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}
	return fields
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func isHex(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-') {
			return false
		}
	}
	return s != ""
}
