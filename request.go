package designsync

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yacobolo/designsync/internal/apperr"
)

// Kind selects the mutator for a Request.
type Kind string

// Request kinds.
const (
	// KindCSSVariable sets a custom property inside a selector block.
	KindCSSVariable Kind = "css-variable"
	// KindSassVariable sets a top-level Sass variable.
	KindSassVariable Kind = "sass-variable"
	// KindDesignToken sets the $value of a design token.
	KindDesignToken Kind = "design-token"
	// KindShadowToken writes a raw shadow value to a design token as layers.
	KindShadowToken Kind = "shadow-token"
	// KindClass replaces, removes or inserts one class on one element.
	KindClass Kind = "class"
	// KindClassProperty writes a rendered CSS value as a utility class on one element.
	KindClassProperty Kind = "class-property"
	// KindComponentClass rewrites a whole class string in a component definition.
	KindComponentClass Kind = "component-class"
)

// Kinds lists every request kind.
var Kinds = []Kind{
	KindCSSVariable, KindSassVariable, KindDesignToken, KindShadowToken,
	KindClass, KindClassProperty, KindComponentClass,
}

// DefaultSelector is the block edited by css-variable requests without a selector.
const DefaultSelector = ":root"

// Request is one edit.
//
// Identifier names the target: a custom property, a Sass variable, a dotted
// token path, the class to replace (class), the element to style
// (class-property) or the class string to rewrite (component-class). For
// class requests with Create set, Identifier locates the element and Value is
// the class to insert; without Create an empty Value removes the class.
type Request struct {
	FilePath   string `json:"filePath"`
	Identifier string `json:"identifier"`
	Value      string `json:"value"`
	Kind       Kind   `json:"kind"`

	Selector  string `json:"selector,omitempty"`  // css-variable block head
	Create    bool   `json:"create,omitempty"`    // insert the target when missing
	TokenType string `json:"tokenType,omitempty"` // $type of a created design token

	Line    int    `json:"line,omitempty"`    // 1-based line hint
	Context string `json:"context,omitempty"` // text near the element or class string
	EID     string `json:"eid,omitempty"`     // marker id of a marked element

	Property string `json:"property,omitempty"` // class-property: CSS property
	Variant  string `json:"variant,omitempty"`  // class-property: variant prefix such as "md:"
}

// Validate checks that the fields required by the kind are set. Paths are
// validated separately against the project root.
func (r Request) Validate() error {
	kinds := make([]any, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = k
	}

	// a marked element needs no identifier unless a class is being replaced
	identOptional := r.EID != "" && (r.Kind == KindClassProperty || (r.Kind == KindClass && r.Create))
	valueOptional := r.Kind == KindClass && !r.Create

	err := validation.ValidateStruct(&r,
		validation.Field(&r.FilePath, validation.Required),
		validation.Field(&r.Kind, validation.Required, validation.In(kinds...)),
		validation.Field(&r.Identifier, validation.When(!identOptional, validation.Required)),
		validation.Field(&r.Value, validation.When(!valueOptional, validation.Required)),
		validation.Field(&r.Property, validation.When(r.Kind == KindClassProperty, validation.Required)),
		validation.Field(&r.Line, validation.Min(0)),
	)
	if err != nil {
		return apperr.InvalidRequest(err)
	}
	return nil
}

// Response reports the outcome of an applied Request.
type Response struct {
	Success       bool   `json:"success"`
	FilePath      string `json:"filePath"`
	Identifier    string `json:"identifier"`
	Kind          Kind   `json:"kind"`
	Changed       bool   `json:"changed"`
	StrippedInset bool   `json:"strippedInset,omitempty"`
	Class         string `json:"class,omitempty"` // class written by class-property
}
