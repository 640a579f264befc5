package utility

import (
	"regexp"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Resolved is the rendered CSS of one class.
type Resolved struct {
	Property string `json:"property"` // parsed property, e.g. "padding"
	CSS      string `json:"css"`      // CSS property, e.g. "padding"
	Value    string `json:"value"`    // CSS value, e.g. "16px"
}

// ClassForValue returns the class that renders cssValue for cssProperty with
// the default table. Values off the property's scale use the arbitrary form.
func ClassForValue(cssProperty, cssValue, prefix string) (string, error) {
	return ClassForValueWith(Default, cssProperty, cssValue, prefix)
}

// ClassForValueWith is ClassForValue with an explicit table.
func ClassForValueWith(t Table, cssProperty, cssValue, prefix string) (string, error) {
	property, ok := t.PropertyForCSS(cssProperty)
	if !ok {
		return "", apperr.Unparsable("css property", cssProperty)
	}
	f, _ := t.Formatter(property)
	cssValue = strings.TrimSpace(cssValue)
	if cssValue == "" {
		return "", apperr.Unparsable(cssProperty+" value", cssValue)
	}

	key := ""
	switch {
	case f.Scale != nil:
		if k, ok := f.Scale.KeyFor(cssValue); ok {
			key = k
		}
	case f.Theme != "":
		key = themeKey(f.Theme, cssValue)
	case keyLike.MatchString(cssValue):
		key = cssValue
	}
	if key == "" {
		if f.Keyword {
			return "", apperr.Unparsable(cssProperty+" value", cssValue)
		}
		key = "[" + EncodeArbitrary(cssValue) + "]"
	}
	return BuildClassWith(t, property, key, prefix)
}

var themeVar = regexp.MustCompile(`^var\(\s*--([\w-]+)\s*\)$`)

// themeKey extracts "red-500" from "var(--color-red-500)".
func themeKey(namespace, value string) string {
	m := themeVar.FindStringSubmatch(value)
	if m == nil {
		return ""
	}
	return strings.TrimPrefix(m[1], namespace+"-")
}

// ValueForClass resolves a class to its rendered CSS with the default table.
func ValueForClass(class string) (Resolved, error) {
	return ValueForClassWith(Default, class)
}

// ValueForClassWith is ValueForClass with an explicit table.
func ValueForClassWith(t Table, class string) (Resolved, error) {
	p, ok := ParseClass(t, class)
	if !ok {
		return Resolved{}, apperr.Unparsable("utility class", class)
	}
	f, _ := t.Formatter(p.Property)
	out := Resolved{Property: p.Property, CSS: f.CSS}

	value := p.Value
	negative := false
	if f.Negative && strings.HasPrefix(value, "-") {
		negative = true
		value = value[1:]
	}

	switch {
	case strings.HasPrefix(value, "["):
		out.Value = DecodeArbitrary(value)
	case f.Scale != nil:
		v, ok := f.Scale.ValueOf(value)
		if !ok {
			return Resolved{}, apperr.Unparsable(p.Property+" scale key", value)
		}
		out.Value = v
	case f.Theme != "":
		out.Value = "var(--" + f.Theme + "-" + value + ")"
	default:
		out.Value = value
	}
	if negative {
		out.Value = "-" + out.Value
	}
	return out, nil
}
