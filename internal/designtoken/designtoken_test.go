package designtoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/shadow"
)

const tokenFile = `{
  "shadow": {
    "$type": "shadow",
    "$description": "Elevation scale",
    "md": {
      "$value": {
        "color": "#0000001a",
        "offsetX": "0",
        "offsetY": "4px",
        "blur": "6px",
        "spread": "-1px"
      },
      "$description": "Cards"
    },
    "nested": {
      "deep": {
        "$value": { "color": "#000", "offsetX": "0", "offsetY": "1px", "blur": "2px", "spread": "0" }
      }
    }
  },
  "color": {
    "$type": "color",
    "brand": { "$value": "#ff0000" }
  }
}
`

func TestWalkInheritsParentTypeOnly(t *testing.T) {
	types := map[string]string{}
	err := Walk([]byte(tokenFile), func(n Node) error {
		types[n.Name()] = n.Type
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"shadow-md":          "shadow",
		"shadow-nested-deep": "",
		"color-brand":        "color",
	}, types)
}

func TestShadowTokensInheritedType(t *testing.T) {
	got, err := ShadowTokens([]byte(tokenFile))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "shadow-md", got[0].Name())
	assert.Equal(t, "Cards", got[0].Description)
	assert.Equal(t, []shadow.Layer{
		{OffsetX: "0", OffsetY: "4px", Blur: "6px", Spread: "-1px", Color: "#0000001a"},
	}, got[0].Layers)
}

func TestWalkRejectsNonObject(t *testing.T) {
	err := Walk([]byte(`["nope"]`), func(Node) error { return nil })
	require.ErrorIs(t, err, apperr.ErrUnparsable)
}

func TestLookup(t *testing.T) {
	n, err := Lookup([]byte(tokenFile), []string{"color", "brand"})
	require.NoError(t, err)
	assert.Equal(t, "color", n.Type)
	assert.Equal(t, `"#ff0000"`, string(n.Value))

	_, err = Lookup([]byte(tokenFile), []string{"color", "missing"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetValueSingleLine(t *testing.T) {
	out, err := SetValue([]byte(tokenFile), []string{"color", "brand"}, "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, replaceOnce(tokenFile, `"#ff0000"`, `"#00ff00"`), string(out))
}

func TestSetValueMultiLineKeepsIndentation(t *testing.T) {
	value, _ := shadow.ToNestedToken([]shadow.Layer{
		{OffsetX: "0", OffsetY: "8px", Blur: "12px", Spread: "-2px", Color: "#00000033"},
	})
	out, err := SetValue([]byte(tokenFile), []string{"shadow", "md"}, value)
	require.NoError(t, err)

	want := `      "$value": {
        "color": "#00000033",
        "offsetX": "0",
        "offsetY": "8px",
        "blur": "12px",
        "spread": "-2px"
      },
      "$description": "Cards"`
	assert.Contains(t, string(out), want)

	got, err := ShadowTokens(out)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "8px", got[0].Layers[0].OffsetY)

	// everything after the edited value is untouched
	assert.Equal(t, tokenFile[len(tokenFile)-200:], string(out[len(out)-200:]))
}

func TestSetValueMissing(t *testing.T) {
	_, err := SetValue([]byte(tokenFile), []string{"shadow", "xl"}, "x")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInsertIntoExistingGroup(t *testing.T) {
	out, err := Insert([]byte(tokenFile), []string{"color", "accent"}, "color", "#0000ff")
	require.NoError(t, err)

	assert.Contains(t, string(out), `"brand": { "$value": "#ff0000" },
    "accent": {
      "$type": "color",
      "$value": "#0000ff"
    }
  }`)

	n, err := Lookup(out, []string{"color", "accent"})
	require.NoError(t, err)
	assert.Equal(t, `"#0000ff"`, string(n.Value))
}

func TestInsertCreatesGroups(t *testing.T) {
	out, err := Insert([]byte("{}\n"), []string{"shadow", "lg"}, "shadow", map[string]string{"color": "#000"})
	require.NoError(t, err)

	n, err := Lookup(out, []string{"shadow", "lg"})
	require.NoError(t, err)
	assert.Equal(t, "shadow", n.Type)
	assert.JSONEq(t, `{"color":"#000"}`, string(n.Value))
}

func TestInsertExisting(t *testing.T) {
	_, err := Insert([]byte(tokenFile), []string{"color", "brand"}, "color", "#000")
	require.Error(t, err)
}

func TestParsePath(t *testing.T) {
	assert.Equal(t, []string{"shadow", "md"}, ParsePath("shadow.md"))
	assert.Equal(t, []string{"a"}, ParsePath(" a. "))
}

func replaceOnce(s, old, repl string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + repl + s[i+len(old):]
		}
	}
	return s
}
