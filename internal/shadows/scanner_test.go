package shadows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/designsync/internal/tokens"
)

const appCSS = `@import "tailwindcss";

@theme inline {
  --shadow-md: 0 6px 8px -1px rgb(0 0 0 / 0.2);
  --shadow-*: initial;
  --color-brand: #f00;
}

:root {
  --shadow-card: 0 1px 2px 0 rgb(0 0 0 / 0.05);
  --elevation-10: 0 10px 20px black;
  --elevation-2: 0 2px 4px black;
  --ring-inset: inset 0 0 0 1px var(--ring);
  --radius: 0.5rem;
  --shadow-broken: var(--shadow-md);
}
`

const tokenJSON = `{
  "shadow": {
    "$type": "shadow",
    "lg": { "$value": { "color": "#000", "offsetX": "0", "offsetY": "12px", "blur": "16px", "spread": "0" } },
    "card": { "$value": { "color": "#111", "offsetX": "0", "offsetY": "1px", "blur": "1px", "spread": "0" } }
  }
}`

const sassVars = `$shadow-xl: 0 30px 30px rgba(0, 0, 0, 0.3) !default;
// $shadow-2xl: 0 0 0 red;
$primary: #333;
`

func scanFixture(t *testing.T) map[string]Definition {
	t.Helper()
	defs, err := Scan(context.Background(), Input{
		Stylesheets: []tokens.Source{{Path: "app.css", Content: appCSS}},
		SassFiles:   []tokens.Source{{Path: "_vars.scss", Content: sassVars}},
		TokenFiles:  []tokens.Source{{Path: "design.tokens.json", Content: tokenJSON}},
	})
	require.NoError(t, err)
	return Index(defs)
}

func TestScanPrecedence(t *testing.T) {
	got := scanFixture(t)

	tests := []struct {
		name       string
		source     Source
		overridden bool
		file       string
	}{
		{"shadow-card", SourceCustom, false, "app.css"},
		{"elevation-2", SourceCustom, false, "app.css"},
		{"ring-inset", SourceCustom, false, "app.css"},
		{"shadow-lg", SourceDesignToken, true, "design.tokens.json"},
		{"shadow-md", SourceFrameworkPreset, true, "app.css"},
		{"shadow-xl", SourceFrameworkPreset, true, "_vars.scss"},
		{"shadow-sm", SourceFrameworkPreset, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := got[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.source, def.Source)
			assert.Equal(t, tt.overridden, def.IsOverridden)
			assert.Equal(t, tt.file, def.File)
		})
	}

	assert.NotContains(t, got, "radius")
	assert.NotContains(t, got, "shadow-broken", "unparsable values are omitted")
	assert.Equal(t, SourceFrameworkPreset, got["shadow-2xl"].Source)
	assert.False(t, got["shadow-2xl"].IsOverridden, "commented Sass variables are ignored")
	assert.Equal(t, "0 6px 8px -1px rgb(0 0 0 / 0.2)", got["shadow-md"].Value)
	assert.Equal(t, "--shadow-md", got["shadow-md"].Variable)
	assert.Equal(t, "$shadow-xl", got["shadow-xl"].Variable)
	assert.Equal(t, "0 30px 30px rgba(0, 0, 0, 0.3)", got["shadow-xl"].Value)
	assert.Equal(t, "shadow.lg", got["shadow-lg"].TokenPath)
}

func TestScanCustomBeatsToken(t *testing.T) {
	got := scanFixture(t)
	assert.Equal(t, SourceCustom, got["shadow-card"].Source)
	assert.Equal(t, "0 1px 2px 0 rgb(0 0 0 / 0.05)", got["shadow-card"].Value)
}

func TestScanOrder(t *testing.T) {
	defs, err := Scan(context.Background(), Input{
		Stylesheets: []tokens.Source{{Path: "app.css", Content: appCSS}},
	})
	require.NoError(t, err)

	names := Names(defs)
	assert.Equal(t, []string{
		"elevation-2", "elevation-10", "ring-inset", "shadow-card",
		"shadow-2xs", "shadow-xs", "shadow-sm", "shadow", "shadow-md",
		"shadow-lg", "shadow-xl", "shadow-2xl", "shadow-inner",
	}, names)
}

func TestScanInvalidTokenFile(t *testing.T) {
	_, err := Scan(context.Background(), Input{
		TokenFiles: []tokens.Source{{Path: "bad.tokens", Content: "[1, 2]"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.tokens")
}

func TestScanCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, Input{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSizeRank(t *testing.T) {
	assert.Less(t, SizeRank("shadow-2xs"), SizeRank("shadow-xs"))
	assert.Less(t, SizeRank("shadow-sm"), SizeRank("shadow"))
	assert.Less(t, SizeRank("shadow"), SizeRank("shadow-md"))
	assert.Less(t, SizeRank("shadow-2xl"), SizeRank("shadow-inner"))
	assert.Equal(t, SizeRank("shadow-10"), SizeRank("shadow-card"))
}

func TestIsShadowLike(t *testing.T) {
	assert.True(t, IsShadowLike("--drop-shadow", "none"))
	assert.True(t, IsShadowLike("--ring", "inset 0 0 0 1px red"))
	assert.True(t, IsShadowLike("--lift", "0 4px 8px black"))
	assert.False(t, IsShadowLike("--radius", "0.5rem"))
	assert.False(t, IsShadowLike("--brand", "oklch(0.7 0.1 200)"))
}
