package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarations(t *testing.T) {
	body := `
  --a: 1px;
  /* --commented: nope; */
  --b :  rgb(0 0 0 / 0.1) ;
  color: red;
  &:hover { --nested: 2px; }
  --c: url("a;b") no-repeat;
  --last: calc(1px + 2px)`

	got := Declarations(body)
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.Name
		assert.Equal(t, d.Value, body[d.ValueStart:d.ValueEnd], "value span of %s", d.Name)
		assert.Equal(t, d.Name, body[d.Start:d.Start+len(d.Name)])
	}
	assert.Equal(t, []string{"--a", "--b", "--c", "--last"}, names)

	assert.Equal(t, "1px", got[0].Value)
	assert.Equal(t, "rgb(0 0 0 / 0.1)", got[1].Value)
	assert.Equal(t, `url("a;b") no-repeat`, got[2].Value)
	assert.Equal(t, "calc(1px + 2px)", got[3].Value)
	assert.Equal(t, len(body), got[3].End)
	assert.Equal(t, ";", body[got[0].End-1:got[0].End])
}

func TestDeclarationsEmpty(t *testing.T) {
	assert.Empty(t, Declarations(""))
	assert.Empty(t, Declarations("  /* only a comment */  "))
}
