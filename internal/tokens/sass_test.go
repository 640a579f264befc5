package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSassVariables(t *testing.T) {
	text := `$primary: #3b82f6 !default;
// $commented: 1px;
.card {
  $primary: red;
  content: "{";
}
$shadow-md:
  0 4px 6px rgba(0, 0, 0, 0.1);
`
	vars := SassVariables(text)
	require.Len(t, vars, 2)

	assert.Equal(t, "primary", vars[0].Name)
	assert.Equal(t, "#3b82f6", vars[0].Value)
	assert.True(t, vars[0].Default)

	assert.Equal(t, "shadow-md", vars[1].Name)
	assert.Equal(t, "0 4px 6px rgba(0, 0, 0, 0.1)", strings.TrimSpace(vars[1].Value))
	assert.Equal(t, vars[1].Value, text[vars[1].ValueStart:vars[1].ValueEnd])
}

func TestFindSassVariables(t *testing.T) {
	text := "$gap: 1rem;\n@mixin m { $gap: 2rem; }\n"
	assert.Len(t, FindSassVariables(text, "$gap"), 1)
	assert.Empty(t, FindSassVariables(text, "missing"))
}
