package utility

import (
	"regexp"
	"strings"
)

// Category groups parsed class properties for display.
type Category string

// Property categories.
const (
	CategorySpacing    Category = "spacing"
	CategorySizing     Category = "sizing"
	CategoryColor      Category = "color"
	CategoryTypography Category = "typography"
	CategoryBorder     Category = "border"
	CategoryEffects    Category = "effects"
	CategoryLayout     Category = "layout"
	CategoryOther      Category = "other"
)

// Rule matches one kind of utility class. Pattern runs against the class
// without its variant prefix; group 1, when present, is the value. Exclude,
// when set, rejects values that belong to another rule sharing the prefix.
type Rule struct {
	Pattern  *regexp.Regexp
	Exclude  *regexp.Regexp
	Category Category
	Property string
	Label    string
}

// Formatter describes how a property is written back as a class.
type Formatter struct {
	Prefix   string // class prefix, e.g. "p" or "bg"
	CSS      string // rendered CSS property
	Scale    *Scale // nil for free-form values such as colors
	Bare     bool   // Prefix alone means DefaultKey ("rounded", "shadow", "border")
	Negative bool   // "-" + Prefix is allowed for negative keys
	Keyword  bool   // the value is the whole class ("flex", "absolute")
	Theme    string // theme variable namespace of free-form keys, e.g. "color"
}

// Table is the pattern lookup behind the mapper.
type Table interface {
	// Match returns the first rule matching core and the captured value.
	Match(core string) (Rule, string, bool)
	// Formatter returns the formatter of a parsed property name.
	Formatter(property string) (Formatter, bool)
	// PropertyForCSS returns the property that renders cssProperty.
	PropertyForCSS(cssProperty string) (string, bool)
}

// Default is the built-in utility-framework table.
var Default Table = newTable(defaultRules, defaultFormatters)

type table struct {
	rules      []Rule
	formatters map[string]Formatter
	byCSS      map[string]string
}

func newTable(rules []Rule, formatters map[string]Formatter) *table {
	t := &table{rules: rules, formatters: formatters, byCSS: make(map[string]string)}
	for prop, f := range formatters {
		if f.CSS == "" {
			continue
		}
		if cur, ok := t.byCSS[f.CSS]; !ok || prop < cur {
			t.byCSS[f.CSS] = prop
		}
	}
	return t
}

func (t *table) Match(core string) (Rule, string, bool) {
	for _, r := range t.rules {
		m := r.Pattern.FindStringSubmatch(core)
		if m == nil {
			continue
		}
		value := DefaultKey
		if len(m) > 1 && m[1] != "" {
			value = m[1]
		}
		if r.Exclude != nil && r.Exclude.MatchString(value) {
			continue
		}
		return r, value, true
	}
	return Rule{}, "", false
}

func (t *table) Formatter(property string) (Formatter, bool) {
	f, ok := t.formatters[property]
	return f, ok
}

func (t *table) PropertyForCSS(cssProperty string) (string, bool) {
	p, ok := t.byCSS[kebab(cssProperty)]
	return p, ok
}

// kebab converts camelCase CSS property names to kebab-case.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func rule(pattern string, cat Category, property, label string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Category: cat, Property: property, Label: label}
}

func ruleExcept(pattern, exclude string, cat Category, property, label string) Rule {
	r := rule(pattern, cat, property, label)
	r.Exclude = regexp.MustCompile(exclude)
	return r
}

const (
	fontSizeKeys   = `xs|sm|base|lg|[2-9]?xl`
	textAlignKeys  = `left|center|right|justify|start|end`
	fontWeightKeys = `thin|extralight|light|normal|medium|semibold|bold|extrabold|black`
	radiusKeys     = `none|sm|md|lg|[2-3]?xl|full`
	shadowKeys     = `2xs|xs|sm|md|lg|2?xl|inner|none`
	arbitrary      = `\[[^\]]+\]`

	// arbitrary values that can only be a size or a weight
	arbitraryLength = `\[\d*\.?\d+(?:px|rem|em|%)\]`
	arbitraryWeight = `\[\d+\]`
)

// defaultRules is ordered: specific rules precede the broader ones sharing a
// prefix. Negative classes ("-mt-4") are matched without their leading "-".
var defaultRules = []Rule{
	// Spacing
	rule(`^p-(.+)$`, CategorySpacing, "padding", "Padding"),
	rule(`^px-(.+)$`, CategorySpacing, "paddingX", "Padding X"),
	rule(`^py-(.+)$`, CategorySpacing, "paddingY", "Padding Y"),
	rule(`^pt-(.+)$`, CategorySpacing, "paddingTop", "Padding top"),
	rule(`^pr-(.+)$`, CategorySpacing, "paddingRight", "Padding right"),
	rule(`^pb-(.+)$`, CategorySpacing, "paddingBottom", "Padding bottom"),
	rule(`^pl-(.+)$`, CategorySpacing, "paddingLeft", "Padding left"),
	rule(`^m-(.+)$`, CategorySpacing, "margin", "Margin"),
	rule(`^mx-(.+)$`, CategorySpacing, "marginX", "Margin X"),
	rule(`^my-(.+)$`, CategorySpacing, "marginY", "Margin Y"),
	rule(`^mt-(.+)$`, CategorySpacing, "marginTop", "Margin top"),
	rule(`^mr-(.+)$`, CategorySpacing, "marginRight", "Margin right"),
	rule(`^mb-(.+)$`, CategorySpacing, "marginBottom", "Margin bottom"),
	rule(`^ml-(.+)$`, CategorySpacing, "marginLeft", "Margin left"),
	rule(`^gap-x-(.+)$`, CategorySpacing, "columnGap", "Column gap"),
	rule(`^gap-y-(.+)$`, CategorySpacing, "rowGap", "Row gap"),
	rule(`^gap-(.+)$`, CategorySpacing, "gap", "Gap"),
	rule(`^space-x-(.+)$`, CategorySpacing, "spaceX", "Space X"),
	rule(`^space-y-(.+)$`, CategorySpacing, "spaceY", "Space Y"),

	// Sizing
	rule(`^w-(.+)$`, CategorySizing, "width", "Width"),
	rule(`^h-(.+)$`, CategorySizing, "height", "Height"),
	rule(`^size-(.+)$`, CategorySizing, "size", "Size"),
	rule(`^min-w-(.+)$`, CategorySizing, "minWidth", "Min width"),
	rule(`^max-w-(.+)$`, CategorySizing, "maxWidth", "Max width"),
	rule(`^min-h-(.+)$`, CategorySizing, "minHeight", "Min height"),
	rule(`^max-h-(.+)$`, CategorySizing, "maxHeight", "Max height"),

	// Typography
	rule(`^text-(`+fontSizeKeys+`|`+arbitraryLength+`)$`, CategoryTypography, "fontSize", "Font size"),
	rule(`^text-(`+textAlignKeys+`)$`, CategoryTypography, "textAlign", "Text align"),
	rule(`^font-(`+fontWeightKeys+`|`+arbitraryWeight+`)$`, CategoryTypography, "fontWeight", "Font weight"),
	rule(`^font-(sans|serif|mono)$`, CategoryTypography, "fontFamily", "Font family"),
	rule(`^leading-(.+)$`, CategoryTypography, "lineHeight", "Line height"),
	rule(`^tracking-(.+)$`, CategoryTypography, "letterSpacing", "Letter spacing"),

	// Border
	rule(`^rounded(?:-(`+radiusKeys+`|`+arbitrary+`))?$`, CategoryBorder, "borderRadius", "Radius"),
	rule(`^border(?:-(\d+|`+arbitrary+`))?$`, CategoryBorder, "borderWidth", "Border width"),
	rule(`^border-(solid|dashed|dotted|double|hidden|none)$`, CategoryBorder, "borderStyle", "Border style"),

	// Effects
	rule(`^shadow(?:-(`+shadowKeys+`|\[[^\]]*\d[^\]]*\]))?$`, CategoryEffects, "boxShadow", "Shadow"),
	rule(`^opacity-(.+)$`, CategoryEffects, "opacity", "Opacity"),

	// Color
	ruleExcept(`^bg-(.+)$`,
		`^(none|fixed|local|scroll|auto|cover|contain|center|top|bottom|left|right|repeat.*|no-repeat|clip-.*|origin-.*|gradient-.*|linear-.*|radial-.*|conic-.*|blend-.*)$`,
		CategoryColor, "backgroundColor", "Background"),
	ruleExcept(`^text-(.+)$`,
		`^(`+fontSizeKeys+`|`+arbitraryLength+`|`+textAlignKeys+`|wrap|nowrap|balance|pretty|ellipsis|clip)$`,
		CategoryColor, "color", "Text color"),
	ruleExcept(`^border-(.+)$`,
		`^(\d+|[xytrblse](-\d+)?|solid|dashed|dotted|double|hidden|none|collapse|separate)$`,
		CategoryColor, "borderColor", "Border color"),
	rule(`^ring-(\d+)$`, CategoryEffects, "ringWidth", "Ring width"),
	rule(`^ring-(.+)$`, CategoryColor, "ringColor", "Ring color"),
	rule(`^shadow-(.+)$`, CategoryColor, "shadowColor", "Shadow color"),
	rule(`^fill-(.+)$`, CategoryColor, "fill", "Fill"),
	rule(`^stroke-(.+)$`, CategoryColor, "stroke", "Stroke"),

	// Layout
	rule(`^(block|inline-block|inline|flex|inline-flex|grid|inline-grid|contents|hidden)$`, CategoryLayout, "display", "Display"),
	rule(`^(static|fixed|absolute|relative|sticky)$`, CategoryLayout, "position", "Position"),
	rule(`^flex-(row|row-reverse|col|col-reverse)$`, CategoryLayout, "flexDirection", "Direction"),
	rule(`^items-(.+)$`, CategoryLayout, "alignItems", "Align items"),
	rule(`^justify-(.+)$`, CategoryLayout, "justifyContent", "Justify"),
	rule(`^overflow-(.+)$`, CategoryLayout, "overflow", "Overflow"),
}

// defaultFormatters maps parsed properties back to classes.
var defaultFormatters = map[string]Formatter{
	// Spacing
	"padding":       {Prefix: "p", CSS: "padding", Scale: SpacingScale},
	"paddingX":      {Prefix: "px", CSS: "padding-inline", Scale: SpacingScale},
	"paddingY":      {Prefix: "py", CSS: "padding-block", Scale: SpacingScale},
	"paddingTop":    {Prefix: "pt", CSS: "padding-top", Scale: SpacingScale},
	"paddingRight":  {Prefix: "pr", CSS: "padding-right", Scale: SpacingScale},
	"paddingBottom": {Prefix: "pb", CSS: "padding-bottom", Scale: SpacingScale},
	"paddingLeft":   {Prefix: "pl", CSS: "padding-left", Scale: SpacingScale},
	"margin":        {Prefix: "m", CSS: "margin", Scale: SpacingScale, Negative: true},
	"marginX":       {Prefix: "mx", CSS: "margin-inline", Scale: SpacingScale, Negative: true},
	"marginY":       {Prefix: "my", CSS: "margin-block", Scale: SpacingScale, Negative: true},
	"marginTop":     {Prefix: "mt", CSS: "margin-top", Scale: SpacingScale, Negative: true},
	"marginRight":   {Prefix: "mr", CSS: "margin-right", Scale: SpacingScale, Negative: true},
	"marginBottom":  {Prefix: "mb", CSS: "margin-bottom", Scale: SpacingScale, Negative: true},
	"marginLeft":    {Prefix: "ml", CSS: "margin-left", Scale: SpacingScale, Negative: true},
	"gap":           {Prefix: "gap", CSS: "gap", Scale: SpacingScale},
	"columnGap":     {Prefix: "gap-x", CSS: "column-gap", Scale: SpacingScale},
	"rowGap":        {Prefix: "gap-y", CSS: "row-gap", Scale: SpacingScale},
	"spaceX":        {Prefix: "space-x", Scale: SpacingScale, Negative: true},
	"spaceY":        {Prefix: "space-y", Scale: SpacingScale, Negative: true},

	// Sizing
	"width":     {Prefix: "w", CSS: "width", Scale: SpacingScale},
	"height":    {Prefix: "h", CSS: "height", Scale: SpacingScale},
	"size":      {Prefix: "size", Scale: SpacingScale},
	"minWidth":  {Prefix: "min-w", CSS: "min-width", Scale: SpacingScale},
	"maxWidth":  {Prefix: "max-w", CSS: "max-width", Scale: SpacingScale},
	"minHeight": {Prefix: "min-h", CSS: "min-height", Scale: SpacingScale},
	"maxHeight": {Prefix: "max-h", CSS: "max-height", Scale: SpacingScale},

	// Typography
	"fontSize":      {Prefix: "text", CSS: "font-size", Scale: FontSizeScale},
	"textAlign":     {Prefix: "text", CSS: "text-align"},
	"fontWeight":    {Prefix: "font", CSS: "font-weight", Scale: FontWeightScale},
	"fontFamily":    {Prefix: "font", CSS: "font-family", Theme: "font"},
	"lineHeight":    {Prefix: "leading", CSS: "line-height"},
	"letterSpacing": {Prefix: "tracking", CSS: "letter-spacing"},

	// Border
	"borderRadius": {Prefix: "rounded", CSS: "border-radius", Scale: RadiusScale, Bare: true},
	"borderWidth":  {Prefix: "border", CSS: "border-width", Scale: BorderWidthScale, Bare: true},
	"borderStyle":  {Prefix: "border", CSS: "border-style"},

	// Effects
	"boxShadow": {Prefix: "shadow", CSS: "box-shadow", Scale: ShadowScale, Bare: true},
	"opacity":   {Prefix: "opacity", CSS: "opacity", Scale: OpacityScale},
	"ringWidth": {Prefix: "ring"},

	// Color
	"backgroundColor": {Prefix: "bg", CSS: "background-color", Theme: "color"},
	"color":           {Prefix: "text", CSS: "color", Theme: "color"},
	"borderColor":     {Prefix: "border", CSS: "border-color", Theme: "color"},
	"ringColor":       {Prefix: "ring", Theme: "color"},
	"shadowColor":     {Prefix: "shadow", Theme: "color"},
	"fill":            {Prefix: "fill", CSS: "fill", Theme: "color"},
	"stroke":          {Prefix: "stroke", CSS: "stroke", Theme: "color"},

	// Layout
	"display":        {CSS: "display", Keyword: true},
	"position":       {CSS: "position", Keyword: true},
	"alignItems":     {Prefix: "items", CSS: "align-items"},
	"justifyContent": {Prefix: "justify", CSS: "justify-content"},
	"overflow":       {Prefix: "overflow", CSS: "overflow"},
	"flexDirection":  {Prefix: "flex", CSS: "flex-direction"},
}
