package mutate

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/sourceloc"
	"github.com/yacobolo/designsync/internal/utility"
)

// SetElementProperty writes a rendered CSS value onto the element identified
// by h as a utility class. A class already setting the same property under
// the same variant prefix is replaced in place; otherwise the class is
// appended to the element's class list. It returns the class written.
func SetElementProperty(text string, h sourceloc.Hints, cssProperty, cssValue, prefix string) (string, string, error) {
	class, err := utility.ClassForValue(cssProperty, cssValue, prefix)
	if err != nil {
		return "", "", err
	}
	property, _ := utility.Default.PropertyForCSS(cssProperty)
	want, ok := utility.ParseClass(utility.Default, class)
	if !ok || want.Property != property {
		return "", "", apperr.Unparsable("class", class)
	}

	loc, err := sourceloc.Locate(text, h)
	if err != nil {
		return "", "", err
	}
	attr, err := sourceloc.FindAttr(text, loc.Line)
	if err != nil {
		return "", "", err
	}

	for _, tok := range strings.Fields(attr.Value) {
		p, ok := utility.ParseClass(utility.Default, tok)
		if !ok || p.Property != want.Property || p.VariantPrefix != want.VariantPrefix {
			continue
		}
		if tok == class {
			return text, class, nil
		}
		out, _, err := sourceloc.ReplaceClassInstance(text, h, tok, class)
		return out, class, err
	}

	out, _, err := sourceloc.InsertClass(text, h, class)
	return out, class, err
}
