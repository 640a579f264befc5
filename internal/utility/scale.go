package utility

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yacobolo/designsync/internal/shadow"
	"github.com/yacobolo/designsync/internal/shadows"
)

// DefaultKey is the scale key of a bare utility such as "rounded" or "shadow".
const DefaultKey = "DEFAULT"

// Scale maps utility keys to canonical rendered values.
type Scale struct {
	Name     string
	keys     []string
	values   map[string]string // key -> canonical value
	byValue  map[string]string // canonical value -> key
	canon    func(string) (string, bool)
	negative bool
}

func newScale(name string, canon func(string) (string, bool), negative bool, pairs ...string) *Scale {
	s := &Scale{
		Name:     name,
		values:   make(map[string]string),
		byValue:  make(map[string]string),
		canon:    canon,
		negative: negative,
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i]
		value, ok := canon(pairs[i+1])
		if !ok {
			panic("utility: bad scale value " + pairs[i+1])
		}
		s.keys = append(s.keys, key)
		s.values[key] = value
		if _, dup := s.byValue[value]; !dup {
			s.byValue[value] = key
		}
	}
	return s
}

// KeyFor returns the key whose value equals the rendered value.
func (s *Scale) KeyFor(rendered string) (string, bool) {
	v, ok := s.canon(strings.TrimSpace(rendered))
	if !ok {
		return "", false
	}
	if key, ok := s.byValue[v]; ok {
		return key, true
	}
	if s.negative && strings.HasPrefix(v, "-") {
		if key, ok := s.byValue[v[1:]]; ok && key != "0" {
			return "-" + key, true
		}
	}
	return "", false
}

// ValueOf returns the canonical rendered value of a key.
func (s *Scale) ValueOf(key string) (string, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	if s.negative && strings.HasPrefix(key, "-") {
		if v, ok := s.values[key[1:]]; ok {
			return "-" + v, true
		}
	}
	return "", false
}

// Keys returns the scale keys in ascending order.
func (s *Scale) Keys() []string {
	return append([]string(nil), s.keys...)
}

var lengthValue = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))(px|rem)?$`)

// rootFontSize converts rem to px.
const rootFontSize = 16

// canonLength normalizes px/rem/unitless-zero lengths to px.
func canonLength(v string) (string, bool) {
	m := lengthValue.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	switch m[2] {
	case "rem":
		n *= rootFontSize
	case "":
		if n != 0 {
			return "", false
		}
	}
	if n == 0 {
		return "0px", true
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + "px", true
}

// canonNumber normalizes plain numbers and percentages to a fraction string.
func canonNumber(v string) (string, bool) {
	v = strings.TrimSpace(v)
	pct := strings.HasSuffix(v, "%")
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return "", false
	}
	if pct {
		n /= 100
	}
	return strconv.FormatFloat(n, 'f', -1, 64), true
}

var weightNames = map[string]string{
	"thin": "100", "extralight": "200", "light": "300", "normal": "400",
	"medium": "500", "semibold": "600", "bold": "700", "extrabold": "800", "black": "900",
}

func canonWeight(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, ok := weightNames[v]; ok {
		return n, true
	}
	if _, err := strconv.Atoi(v); err != nil {
		return "", false
	}
	return v, true
}

// canonShadow normalizes a box-shadow so computed styles ("rgba(0, 0, 0, 0.1)
// 0px 4px 6px -1px") and authored values compare equal.
func canonShadow(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, shadow.None) {
		return shadow.None, true
	}
	layers, err := shadow.ParseLayers(v)
	if err != nil {
		return "", false
	}
	for i, l := range layers {
		for _, p := range []*string{&l.OffsetX, &l.OffsetY, &l.Blur, &l.Spread} {
			if c, ok := canonLength(*p); ok {
				*p = c
			}
		}
		l.Color = canonColor(l.Color)
		layers[i] = l
	}
	return shadow.FormatLayers(layers), true
}

var colorArgs = regexp.MustCompile(`[\s,/]+`)

// canonColor rewrites rgb()/rgba() into "rgb(r g b / a)" with a default alpha of 1.
func canonColor(c string) string {
	lower := strings.ToLower(strings.TrimSpace(c))
	open := strings.IndexByte(lower, '(')
	if open < 0 || !strings.HasSuffix(lower, ")") {
		return lower
	}
	name := lower[:open]
	if name != "rgb" && name != "rgba" {
		return lower
	}
	args := colorArgs.Split(strings.TrimSpace(lower[open+1:len(lower)-1]), -1)
	if len(args) == 3 {
		args = append(args, "1")
	}
	if len(args) != 4 {
		return lower
	}
	if a, ok := canonNumber(args[3]); ok {
		args[3] = a
	}
	return "rgb(" + strings.Join(args[:3], " ") + " / " + args[3] + ")"
}

// spacingPairs lists the spacing scale: key n renders as n * 0.25rem.
func spacingPairs() []string {
	pairs := []string{"0", "0px", "px", "1px"}
	steps := []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 16, 20, 24, 28, 32, 36, 40, 44, 48, 52, 56, 60, 64, 72, 80, 96}
	for _, n := range steps {
		key := strconv.FormatFloat(n, 'f', -1, 64)
		pairs = append(pairs, key, strconv.FormatFloat(n*4, 'f', -1, 64)+"px")
	}
	return pairs
}

func opacityPairs() []string {
	var pairs []string
	for n := 0; n <= 100; n += 5 {
		pairs = append(pairs, strconv.Itoa(n), strconv.Itoa(n)+"%")
	}
	return pairs
}

func shadowPairs() []string {
	pairs := []string{"none", "none"}
	for _, p := range shadows.Presets {
		key := strings.TrimPrefix(strings.TrimPrefix(p.Name, "shadow"), "-")
		if key == "" {
			key = DefaultKey
		}
		pairs = append(pairs, key, p.Value)
	}
	return pairs
}

// Scales.
var (
	SpacingScale = newScale("spacing", canonLength, true, spacingPairs()...)

	RadiusScale = newScale("radius", canonLength, false,
		"none", "0px", "sm", "2px", DefaultKey, "4px", "md", "6px", "lg", "8px",
		"xl", "12px", "2xl", "16px", "3xl", "24px", "full", "9999px")

	FontSizeScale = newScale("font-size", canonLength, false,
		"xs", "12px", "sm", "14px", "base", "16px", "lg", "18px", "xl", "20px",
		"2xl", "24px", "3xl", "30px", "4xl", "36px", "5xl", "48px", "6xl", "60px",
		"7xl", "72px", "8xl", "96px", "9xl", "128px")

	FontWeightScale = newScale("font-weight", canonWeight, false,
		"thin", "100", "extralight", "200", "light", "300", "normal", "400",
		"medium", "500", "semibold", "600", "bold", "700", "extrabold", "800", "black", "900")

	OpacityScale = newScale("opacity", canonNumber, false, opacityPairs()...)

	BorderWidthScale = newScale("border-width", canonLength, false,
		"0", "0px", DefaultKey, "1px", "2", "2px", "4", "4px", "8", "8px")

	ShadowScale = newScale("shadow", canonShadow, false, shadowPairs()...)
)
