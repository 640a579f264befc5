// Package utility maps between utility-class strings ("sm:bg-red-500 p-4")
// and structured properties, and between rendered CSS values and the classes
// that produce them.
package utility

import (
	"regexp"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Property is the parsed form of one class token.
type Property struct {
	Category      Category `json:"category"`
	Property      string   `json:"property"`
	Label         string   `json:"label"`
	Value         string   `json:"value"`
	FullClassText string   `json:"fullClassText"`
	VariantPrefix string   `json:"variantPrefix,omitempty"`
}

// Parsed is the result of ParseClasses. Other keeps unmatched tokens verbatim.
type Parsed struct {
	Properties []Property `json:"properties"`
	Other      []string   `json:"other"`
}

// ParseClasses parses a class string with the default table.
func ParseClasses(text string) Parsed {
	return ParseClassesWith(Default, text)
}

// ParseClassesWith parses a class string with t.
func ParseClassesWith(t Table, text string) Parsed {
	out := Parsed{Properties: []Property{}, Other: []string{}}
	for _, class := range strings.Fields(text) {
		if p, ok := ParseClass(t, class); ok {
			out.Properties = append(out.Properties, p)
			continue
		}
		out.Other = append(out.Other, class)
	}
	return out
}

// ParseClass parses a single class token.
func ParseClass(t Table, class string) (Property, bool) {
	prefix, core := SplitVariant(class)

	negative := false
	if len(core) > 1 && core[0] == '-' {
		negative = true
		core = core[1:]
	}

	rule, value, ok := t.Match(core)
	if !ok {
		return Property{}, false
	}
	if negative {
		f, ok := t.Formatter(rule.Property)
		if !ok || !f.Negative {
			return Property{}, false
		}
		value = "-" + value
	}

	return Property{
		Category:      rule.Category,
		Property:      rule.Property,
		Label:         rule.Label,
		Value:         value,
		FullClassText: class,
		VariantPrefix: prefix,
	}, true
}

// SplitVariant splits "md:hover:p-4" into "md:hover:" and "p-4". Colons inside
// arbitrary values ("[color:red]") are not variant separators.
func SplitVariant(class string) (prefix, core string) {
	depth := 0
	last := -1
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	return class[:last+1], class[last+1:]
}

// BuildClass formats property=value as a class with the default table.
func BuildClass(property, value, prefix string) (string, error) {
	return BuildClassWith(Default, property, value, prefix)
}

var (
	keyLike   = regexp.MustCompile(`^[a-z0-9]+(?:[-./][a-z0-9]+)*$`)
	cssLength = regexp.MustCompile(`^\d*\.?\d+(?:px|rem|em|%|vh|vw|ch|deg|ms|s)$`)
)

// BuildClassWith formats property=value as a class with t. Values that are not
// scale keys become arbitrary values ("p-[13px]").
func BuildClassWith(t Table, property, value, prefix string) (string, error) {
	f, ok := t.Formatter(property)
	if !ok {
		return "", apperr.Unparsable("utility property", property)
	}
	value = strings.TrimSpace(value)

	var core string
	switch {
	case f.Keyword:
		if !keyLike.MatchString(value) {
			return "", apperr.Unparsable(property+" value", value)
		}
		core = value
	case value == "" || value == DefaultKey:
		if !f.Bare {
			return "", apperr.Unparsable(property+" value", value)
		}
		core = f.Prefix
	default:
		negative := f.Negative && strings.HasPrefix(value, "-") && len(value) > 1
		if negative {
			value = value[1:]
		}
		core = f.Prefix + "-" + formatValue(f, value)
		if negative {
			core = "-" + core
		}
	}

	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return prefix + core, nil
}

func formatValue(f Formatter, value string) string {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return value
	}
	if f.Scale != nil {
		if _, ok := f.Scale.ValueOf(value); ok {
			return value
		}
	}
	if keyLike.MatchString(value) && !cssLength.MatchString(value) {
		return value
	}
	return "[" + EncodeArbitrary(value) + "]"
}

// EncodeArbitrary writes spaces as "_" for use inside "[...]".
func EncodeArbitrary(v string) string {
	return strings.Join(strings.Fields(v), "_")
}

// DecodeArbitrary strips the brackets of an arbitrary value and restores spaces.
func DecodeArbitrary(v string) string {
	v = strings.TrimSuffix(strings.TrimPrefix(v, "["), "]")
	return strings.ReplaceAll(v, "_", " ")
}

// Replace swaps the class token old for repl, preserving order. An empty repl
// removes the token. The bool reports whether old was present.
func Replace(classes, old, repl string) (string, bool) {
	tokens := strings.Fields(classes)
	out := make([]string, 0, len(tokens))
	found := false
	for _, tok := range tokens {
		if tok == old && !found {
			found = true
			if repl != "" {
				out = append(out, repl)
			}
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " "), found
}

// Add appends class unless it is already present.
func Add(classes, class string) string {
	tokens := strings.Fields(classes)
	for _, tok := range tokens {
		if tok == class {
			return strings.Join(tokens, " ")
		}
	}
	return strings.Join(append(tokens, class), " ")
}

// Remove drops every occurrence of class.
func Remove(classes, class string) string {
	tokens := strings.Fields(classes)
	out := tokens[:0]
	for _, tok := range tokens {
		if tok != class {
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}

// SetProperty sets property=value under prefix. An existing class for the same
// property and prefix is replaced in place; otherwise the class is appended.
// An empty value removes it.
func SetProperty(classes, property, value, prefix string) (string, error) {
	return SetPropertyWith(Default, classes, property, value, prefix)
}

// SetPropertyWith is SetProperty with an explicit table.
func SetPropertyWith(t Table, classes, property, value, prefix string) (string, error) {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}

	var class string
	if value != "" {
		c, err := BuildClassWith(t, property, value, prefix)
		if err != nil {
			return "", err
		}
		class = c
	}

	for _, tok := range strings.Fields(classes) {
		p, ok := ParseClass(t, tok)
		if !ok || p.Property != property || p.VariantPrefix != prefix {
			continue
		}
		out, _ := Replace(classes, tok, class)
		return out, nil
	}
	if class == "" {
		return strings.Join(strings.Fields(classes), " "), nil
	}
	return Add(classes, class), nil
}
