package shadows

// Preset is one entry of the framework's built-in shadow scale.
type Preset struct {
	Name  string
	Value string
}

// Presets is the default utility-framework shadow scale.
var Presets = []Preset{
	{"shadow-2xs", "0 1px rgb(0 0 0 / 0.05)"},
	{"shadow-xs", "0 1px 2px 0 rgb(0 0 0 / 0.05)"},
	{"shadow-sm", "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)"},
	{"shadow", "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)"},
	{"shadow-md", "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)"},
	{"shadow-lg", "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)"},
	{"shadow-xl", "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)"},
	{"shadow-2xl", "0 25px 50px -12px rgb(0 0 0 / 0.25)"},
	{"shadow-inner", "inset 0 2px 4px 0 rgb(0 0 0 / 0.05)"},
}

// PresetValue returns the built-in value for name.
func PresetValue(name string) (string, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// sizeRank orders the trailing size suffix of a shadow name. A name without a
// suffix ranks as "".
var sizeRank = map[string]int{
	"2xs": 0,
	"xs":  1,
	"sm":  2,
	"":    3,
	"md":  4,
	"lg":  5,
	"xl":  6,
	"2xl": 7,
}

const unknownRank = 8

// SizeRank returns the rank of the suffix after the last "-" in name.
func SizeRank(name string) int {
	suffix := ""
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '-' {
			suffix = name[i+1:]
			break
		}
	}
	if r, ok := sizeRank[suffix]; ok {
		return r
	}
	return unknownRank
}
