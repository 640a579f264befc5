package sourceloc

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/designsync/internal/apperr"
)

const layout = `templ Header() {
	<header class="flex p-4">
		Title
	</header>
}

templ Footer() {
	<footer class="flex p-4">
		Links
	</footer>
}
`

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		hints   Hints
		line    int
		wantErr error
	}{
		{"hint line exact", Hints{Identifier: "flex p-4", Line: 8}, 8, nil},
		{"hint window nearest first", Hints{Identifier: "flex p-4", Line: 3}, 2, nil},
		{"context narrows whole file", Hints{Identifier: "flex p-4", Context: "footer"}, 8, nil},
		{"unique identifier without hint", Hints{Identifier: "Links"}, 9, nil},
		{"hint outside file falls back", Hints{Identifier: "Title", Line: 40}, 3, nil},
		{"ambiguous without hint", Hints{Identifier: "flex p-4"}, 0, apperr.ErrAmbiguous},
		{"missing identifier", Hints{Identifier: "grid"}, 0, apperr.ErrNotFound},
		{"empty identifier", Hints{}, 0, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Locate(layout, tt.hints)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.line, loc.Line)
		})
	}
}

func TestLocateColumn(t *testing.T) {
	loc, err := LineLocator{}.Locate(layout, Hints{Identifier: "p-4", Line: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, loc.Line)
	// "\t<header class=\"flex " is 21 bytes
	assert.Equal(t, 22, loc.Column)
}

func TestLocateClassBoundaries(t *testing.T) {
	text := `<div className="flex p-4">` + "\n" + `<span className="p-40">x</span>` + "\n"

	loc, err := Locate(text, Hints{Identifier: "p-4"})
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)
	// `<div className="flex ` is 21 bytes
	assert.Equal(t, 22, loc.Column)

	got, _, err := ReplaceClassInstance(text, Hints{Identifier: "p-4"}, "p-4", "p-6")
	require.NoError(t, err)
	assert.Equal(t, `<div className="flex p-6">`+"\n"+`<span className="p-40">x</span>`+"\n", got)

	_, err = Locate(text, Hints{Identifier: "p-"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFindTokenWrappedAttribute(t *testing.T) {
	text := "<button\n\tclass=\"inline-flex items-center\n\t\tpx-4 py-2\"\n>\n"

	tok, err := FindToken(text, 1, "py-2")
	require.NoError(t, err)
	assert.Equal(t, "py-2", text[tok.Start:tok.End])
	assert.Contains(t, tok.Attr.Value, "inline-flex")

	_, err = FindToken(text, 1, "py")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = FindToken(text, 99, "py-2")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReplaceClassInstance(t *testing.T) {
	text := `<div class="flex p-4 text-sm">` + "\n</div>\n"

	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{"replace", "p-4", "p-6", `<div class="flex p-6 text-sm">`},
		{"remove middle", "p-4", "", `<div class="flex text-sm">`},
		{"remove last", "text-sm", "", `<div class="flex p-4">`},
		{"remove first", "flex", "", `<div class="p-4 text-sm">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, loc, err := ReplaceClassInstance(text, Hints{Line: 1}, tt.old, tt.new)
			require.NoError(t, err)
			assert.Equal(t, 1, loc.Line)
			assert.Equal(t, tt.want+"\n</div>\n", got)
		})
	}

	_, _, err := ReplaceClassInstance(text, Hints{Identifier: "flex"}, "p-8", "p-6")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInsertClass(t *testing.T) {
	text := `<div class="flex p-4 text-sm">hi</div>`

	got, _, err := InsertClass(text, Hints{Identifier: "flex"}, "shadow-md")
	require.NoError(t, err)
	assert.Equal(t, `<div class="flex p-4 text-sm shadow-md">hi</div>`, got)

	again, _, err := InsertClass(got, Hints{Identifier: "flex"}, "shadow-md")
	require.NoError(t, err)
	assert.Equal(t, got, again)

	empty := `<div class="">hi</div>`
	got, _, err = InsertClass(empty, Hints{Identifier: "hi"}, "p-2")
	require.NoError(t, err)
	assert.Equal(t, `<div class="p-2">hi</div>`, got)

	_, _, err = InsertClass(text, Hints{Identifier: "flex"}, " ")
	require.ErrorIs(t, err, apperr.ErrUnparsable)
}

func TestRewriteComponent(t *testing.T) {
	text := strings.Join([]string{
		`const primary = cn("rounded-md px-4 py-2")`,
		``,
		``,
		``,
		``,
		`const secondary = cn("rounded-md px-4 py-2")`,
	}, "\n")

	t.Run("ambiguous leaves text unchanged", func(t *testing.T) {
		got, err := RewriteComponent(text, "rounded-md px-4 py-2", "rounded-lg px-4 py-2", "")
		require.ErrorIs(t, err, apperr.ErrAmbiguous)
		assert.Equal(t, text, got)

		var amb *apperr.AmbiguousError
		require.ErrorAs(t, err, &amb)
		assert.Equal(t, 2, amb.Matches)
	})

	t.Run("context narrows to one", func(t *testing.T) {
		got, err := RewriteComponent(text, "rounded-md px-4 py-2", "rounded-lg px-4 py-2", "secondary")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(got, "rounded-lg"))
		assert.True(t, strings.HasSuffix(got, `cn("rounded-lg px-4 py-2")`))
	})

	t.Run("class boundaries", func(t *testing.T) {
		got, err := RewriteComponent(`cn("a px-40 b px-4")`, "px-4", "px-6", "")
		require.NoError(t, err)
		assert.Equal(t, `cn("a px-40 b px-6")`, got)
	})

	t.Run("missing", func(t *testing.T) {
		got, err := RewriteComponent(text, "grid", "flex", "")
		require.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, text, got)
	})
}

func TestMarkers(t *testing.T) {
	text := "<div class=\"flex p-4\">\n\t<span class=\"p-4\">x</span>\n</div>\n"

	marked, eid, err := Mark(text, Hints{Identifier: "flex p-4"})
	require.NoError(t, err)
	_, err = uuid.Parse(eid)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(marked, `<div `+MarkerAttr+`="`+eid+`" class="flex p-4">`))

	again, sameEID, err := Mark(marked, Hints{Identifier: "flex p-4"})
	require.NoError(t, err)
	assert.Equal(t, eid, sameEID)
	assert.Equal(t, marked, again)

	loc, err := FindMarked(marked, eid)
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Line)

	edited, _, err := ReplaceClassInstance(marked, Hints{EID: eid}, "p-4", "p-8")
	require.NoError(t, err)
	assert.Contains(t, edited, `class="flex p-8"`)
	assert.Contains(t, edited, `<span class="p-4">`)

	restored, err := Unmark(marked, eid)
	require.NoError(t, err)
	assert.Equal(t, text, restored)

	_, err = Unmark(text, eid)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = FindMarked(text, "")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
