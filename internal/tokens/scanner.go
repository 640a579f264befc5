// Package tokens extracts design tokens (CSS custom properties) from the
// default and dark-mode blocks of a stylesheet.
package tokens

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yacobolo/designsync/internal/cssblock"
)

// Category is the semantic category of a token.
type Category string

// Token categories.
const (
	CategoryColor      Category = "color"
	CategorySpacing    Category = "spacing"
	CategoryRadius     Category = "radius"
	CategoryShadow     Category = "shadow"
	CategoryTypography Category = "typography"
	CategoryOther      Category = "other"
)

// ColorFormat is the notation a color token is written in.
type ColorFormat string

// Color formats.
const (
	FormatOKLCH ColorFormat = "oklch"
	FormatHSL   ColorFormat = "hsl"
	FormatRGB   ColorFormat = "rgb"
	FormatHex   ColorFormat = "hex"
	FormatNone  ColorFormat = "none"
)

// Token is one custom property merged across the light and dark blocks.
type Token struct {
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Group       string      `json:"group"`
	LightValue  string      `json:"lightValue"`
	DarkValue   string      `json:"darkValue"`
	ColorFormat ColorFormat `json:"colorFormat"`
	File        string      `json:"file,omitempty"`
}

// Options selects the blocks to read.
type Options struct {
	Light string // literal head of the default block, ":root" when empty
	Dark  string // literal head of the dark block, ".dark" when empty
}

// DefaultOptions reads :root and .dark.
func DefaultOptions() Options {
	return Options{Light: ":root", Dark: ".dark"}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Light == "" {
		o.Light = d.Light
	}
	if o.Dark == "" {
		o.Dark = d.Dark
	}
	return o
}

// LightBlock returns the first default-theme block that is not nested in a
// prefers-color-scheme: dark media query.
func LightBlock(css string, opts Options) (cssblock.Span, bool) {
	return cssblock.FindOutside(css, opts.withDefaults().Light, cssblock.DarkMediaPattern)
}

// DarkBlock returns the first dark-mode block: the dark selector block, or
// the light selector nested in a prefers-color-scheme: dark media query.
func DarkBlock(css string, opts Options) (cssblock.Span, bool) {
	opts = opts.withDefaults()
	if span, ok := cssblock.Find(css, opts.Dark); ok {
		return span, true
	}
	media, ok := cssblock.FindFirstPattern(css, cssblock.DarkMediaPattern)
	if !ok {
		return cssblock.Span{}, false
	}
	return cssblock.Within(css, media, opts.Light)
}

// Scan extracts and merges tokens from one stylesheet.
func Scan(css string, opts Options) map[string]Token {
	out := make(map[string]Token)

	if span, ok := LightBlock(css, opts); ok {
		for _, d := range Declarations(span.Body(css)) {
			tok := out[d.Name]
			tok.Name = d.Name
			tok.LightValue = d.Value
			out[d.Name] = tok
		}
	}
	if span, ok := DarkBlock(css, opts); ok {
		for _, d := range Declarations(span.Body(css)) {
			tok := out[d.Name]
			tok.Name = d.Name
			tok.DarkValue = d.Value
			out[d.Name] = tok
		}
	}

	for name, tok := range out {
		out[name] = classify(tok)
	}
	return out
}

// Source is one stylesheet to scan.
type Source struct {
	Path    string
	Content string
}

// ScanFiles scans several stylesheets. The first file defining a name wins.
func ScanFiles(sources []Source, opts Options) map[string]Token {
	out := make(map[string]Token)
	for _, src := range sources {
		for name, tok := range Scan(src.Content, opts) {
			if _, exists := out[name]; exists {
				continue
			}
			tok.File = src.Path
			out[name] = tok
		}
	}
	return out
}

// Sorted returns tokens ordered by category, group and name.
func Sorted(tokens map[string]Token) []Token {
	list := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Name < b.Name
	})
	return list
}

var (
	// hslChannels matches bare "H S% L%" triples (optionally "/ alpha").
	hslChannels = regexp.MustCompile(`^-?[\d.]+(deg)?\s+[\d.]+%\s+[\d.]+%(\s*/\s*[\d.]+%?)?$`)
	// numericScale matches names ending in a numeric scale step: blue-500, chart-1.
	numericScale = regexp.MustCompile(`^(.+?)-\d+$`)
)

// semanticPrefixes are name prefixes that form their own group.
var semanticPrefixes = []string{
	"primary", "secondary", "accent", "muted", "destructive", "card", "popover",
	"sidebar", "chart", "success", "warning", "info",
}

// categoryBuckets is the fallback group for each category.
var categoryBuckets = map[Category]string{
	CategoryColor:      "base",
	CategorySpacing:    "spacing",
	CategoryRadius:     "radius",
	CategoryShadow:     "shadow",
	CategoryTypography: "typography",
	CategoryOther:      "other",
}

// classify fills Category, ColorFormat and Group.
func classify(tok Token) Token {
	value := tok.LightValue
	if value == "" {
		value = tok.DarkValue
	}
	tok.ColorFormat = DetectColorFormat(value)
	tok.Category = categorize(tok.Name, tok.ColorFormat)
	tok.Group = groupOf(tok.Name, tok.Category)
	return tok
}

// DetectColorFormat returns the color notation of a value, or FormatNone.
func DetectColorFormat(value string) ColorFormat {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(v, "oklch("):
		return FormatOKLCH
	case strings.HasPrefix(v, "hsl(") || strings.HasPrefix(v, "hsla("):
		return FormatHSL
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return FormatRGB
	case strings.HasPrefix(v, "#") && len(v) > 1:
		return FormatHex
	case hslChannels.MatchString(v):
		return FormatHSL
	}
	return FormatNone
}

func categorize(name string, format ColorFormat) Category {
	n := strings.ToLower(strings.TrimPrefix(name, "--"))
	switch {
	case strings.Contains(n, "shadow"):
		return CategoryShadow
	case strings.Contains(n, "radius") || strings.HasPrefix(n, "rounded"):
		return CategoryRadius
	case format != FormatNone:
		return CategoryColor
	case strings.Contains(n, "font") || strings.HasPrefix(n, "text-") ||
		strings.Contains(n, "leading") || strings.Contains(n, "tracking") ||
		strings.Contains(n, "line-height") || strings.Contains(n, "letter-spacing"):
		return CategoryTypography
	case strings.Contains(n, "spacing") || strings.Contains(n, "space") ||
		strings.Contains(n, "gap") || strings.Contains(n, "padding") || strings.Contains(n, "margin"):
		return CategorySpacing
	}
	return CategoryOther
}

func groupOf(name string, cat Category) string {
	n := strings.TrimPrefix(name, "--")
	if cat == CategoryColor {
		n = strings.TrimPrefix(n, "color-")
	}

	if m := numericScale.FindStringSubmatch(n); m != nil && cat == CategoryColor {
		return m[1]
	}
	for _, prefix := range semanticPrefixes {
		if n == prefix || strings.HasPrefix(n, prefix+"-") {
			return prefix
		}
	}
	return categoryBuckets[cat]
}
