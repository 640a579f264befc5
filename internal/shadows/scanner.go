// Package shadows builds the list of shadow values available to a project by
// merging four sources: author custom properties, design-token files,
// framework variable overrides and the built-in framework presets.
package shadows

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yacobolo/designsync/internal/cssblock"
	"github.com/yacobolo/designsync/internal/designtoken"
	"github.com/yacobolo/designsync/internal/shadow"
	"github.com/yacobolo/designsync/internal/tokens"
)

// Source is the provenance of a shadow definition.
type Source string

// Shadow sources.
const (
	SourceCustom          Source = "custom"
	SourceDesignToken     Source = "design-token"
	SourceFrameworkPreset Source = "framework-preset"
)

// Definition is one named shadow.
type Definition struct {
	Name         string         `json:"name"`
	Value        string         `json:"value"`
	Layers       []shadow.Layer `json:"layers"`
	Source       Source         `json:"source"`
	IsOverridden bool           `json:"isOverridden"`
	File         string         `json:"file,omitempty"`
	Variable     string         `json:"variable,omitempty"`
	TokenPath    string         `json:"tokenPath,omitempty"`

	precedence int
}

// precedence on name collisions, highest wins
const (
	precPreset = iota
	precOverride
	precToken
	precCustom
)

// Input is the project content to scan.
type Input struct {
	Stylesheets []tokens.Source // CSS files
	SassFiles   []tokens.Source
	TokenFiles  []tokens.Source // *.tokens, *.tokens.json
	Options     tokens.Options
}

// Scan gathers every source concurrently and returns the merged, sorted list.
// A token file that is not a JSON object fails the whole scan.
func Scan(ctx context.Context, in Input) ([]Definition, error) {
	var custom, fromTokens, overrides []Definition

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		custom = customShadows(in.Stylesheets, in.Options)
		return ctx.Err()
	})
	g.Go(func() error {
		var err error
		fromTokens, err = tokenShadows(ctx, in.TokenFiles)
		return err
	})
	g.Go(func() error {
		overrides = append(themeOverrides(in.Stylesheets), sassOverrides(in.SassFiles)...)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := presetShadows()
	all = append(all, overrides...)
	all = append(all, fromTokens...)
	all = append(all, custom...)
	return Sort(merge(all)), nil
}

// merge keeps the highest-precedence definition per name. Within one tier
// the first definition wins.
func merge(defs []Definition) []Definition {
	winners := make(map[string]Definition)
	var order []string
	for _, d := range defs {
		cur, ok := winners[d.Name]
		if !ok {
			order = append(order, d.Name)
			winners[d.Name] = d
			continue
		}
		if d.precedence <= cur.precedence {
			continue
		}
		if cur.precedence == precPreset || cur.IsOverridden {
			d.IsOverridden = true
		}
		winners[d.Name] = d
	}

	out := make([]Definition, 0, len(order))
	for _, name := range order {
		out = append(out, winners[name])
	}
	return out
}

// Sort orders definitions by tier, then size rank, then natural name order.
func Sort(defs []Definition) []Definition {
	coll := collate.New(language.English, collate.Numeric)
	sort.SliceStable(defs, func(i, j int) bool {
		a, b := defs[i], defs[j]
		if ta, tb := tier(a.Source), tier(b.Source); ta != tb {
			return ta < tb
		}
		if ra, rb := SizeRank(a.Name), SizeRank(b.Name); ra != rb {
			return ra < rb
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
	return defs
}

func tier(s Source) int {
	switch s {
	case SourceCustom:
		return 0
	case SourceDesignToken:
		return 1
	}
	return 2
}

// Index maps definitions by name.
func Index(defs []Definition) map[string]Definition {
	out := make(map[string]Definition, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}

// Names returns the names of defs in order.
func Names(defs []Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}

// lengthPair matches two consecutive length tokens, e.g. "0 4px" or "2px -1px".
// The second one needs a unit so color channels ("0.7 0.1 200") do not match.
var lengthPair = regexp.MustCompile(`(?:^|[\s,])-?(?:\d+\.?\d*|\.\d+)(?:px|rem|em)?\s+-?(?:\d+\.?\d*|\.\d+)(?:px|rem|em)(?:\s|$|,)`)

// IsShadowLike reports whether a custom property looks like a shadow.
func IsShadowLike(name, value string) bool {
	if strings.Contains(strings.ToLower(name), "shadow") {
		return true
	}
	return strings.Contains(value, "inset") || lengthPair.MatchString(value)
}

func customShadows(sheets []tokens.Source, opts tokens.Options) []Definition {
	var out []Definition
	for _, src := range sheets {
		span, ok := tokens.LightBlock(src.Content, opts)
		if !ok {
			continue
		}
		for _, d := range tokens.Declarations(span.Body(src.Content)) {
			if !IsShadowLike(d.Name, d.Value) {
				continue
			}
			def, ok := fromRaw(normalize(d.Name), d.Value)
			if !ok {
				continue
			}
			def.Source = SourceCustom
			def.precedence = precCustom
			def.File = src.Path
			def.Variable = d.Name
			out = append(out, def)
		}
	}
	return out
}

func tokenShadows(ctx context.Context, files []tokens.Source) ([]Definition, error) {
	var out []Definition
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := designtoken.ShadowTokens([]byte(src.Content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		for _, t := range found {
			out = append(out, Definition{
				Name:       t.Name(),
				Value:      shadow.FormatLayers(t.Layers),
				Layers:     t.Layers,
				Source:     SourceDesignToken,
				File:       src.Path,
				TokenPath:  strings.Join(t.Path, "."),
				precedence: precToken,
			})
		}
	}
	return out, nil
}

// themeOverrides reads --shadow* declarations from @theme blocks.
func themeOverrides(sheets []tokens.Source) []Definition {
	var out []Definition
	for _, src := range sheets {
		for _, span := range cssblock.FindPattern(src.Content, cssblock.ThemePattern, false) {
			for _, d := range tokens.Declarations(span.Body(src.Content)) {
				if !strings.HasPrefix(d.Name, "--shadow") {
					continue
				}
				def, ok := fromRaw(normalize(d.Name), d.Value)
				if !ok {
					continue
				}
				def.File = src.Path
				def.Variable = d.Name
				out = append(out, override(def))
			}
		}
	}
	return out
}

// sassOverrides reads $…shadow… variables.
func sassOverrides(files []tokens.Source) []Definition {
	var out []Definition
	for _, src := range files {
		for _, v := range tokens.SassVariables(src.Content) {
			if !strings.Contains(strings.ToLower(v.Name), "shadow") {
				continue
			}
			def, ok := fromRaw(v.Name, v.Value)
			if !ok {
				continue
			}
			def.File = src.Path
			def.Variable = "$" + v.Name
			out = append(out, override(def))
		}
	}
	return out
}

func presetShadows() []Definition {
	out := make([]Definition, 0, len(Presets))
	for _, p := range Presets {
		def, ok := fromRaw(p.Name, p.Value)
		if !ok {
			continue
		}
		def.Source = SourceFrameworkPreset
		def.precedence = precPreset
		out = append(out, def)
	}
	return out
}

func override(def Definition) Definition {
	def.Source = SourceFrameworkPreset
	def.IsOverridden = true
	def.precedence = precOverride
	return def
}

// fromRaw parses a raw value; values that do not parse are dropped.
func fromRaw(name, raw string) (Definition, bool) {
	layers, err := shadow.ParseLayers(raw)
	if err != nil || len(layers) == 0 {
		return Definition{}, false
	}
	return Definition{Name: name, Value: strings.TrimSpace(raw), Layers: layers}, true
}

// normalize strips the custom-property or Sass sigil from a variable name.
func normalize(name string) string {
	return strings.TrimPrefix(strings.TrimPrefix(name, "--"), "$")
}
