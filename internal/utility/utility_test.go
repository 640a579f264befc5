package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/designsync/internal/apperr"
)

func TestParseClassesVariantPrefix(t *testing.T) {
	got := ParseClasses("sm:bg-red-500 p-4")

	require.Len(t, got.Properties, 2)
	assert.Empty(t, got.Other)

	assert.Equal(t, Property{
		Category:      CategoryColor,
		Property:      "backgroundColor",
		Label:         "Background",
		Value:         "red-500",
		FullClassText: "sm:bg-red-500",
		VariantPrefix: "sm:",
	}, got.Properties[0])

	assert.Equal(t, CategorySpacing, got.Properties[1].Category)
	assert.Equal(t, "padding", got.Properties[1].Property)
	assert.Equal(t, "4", got.Properties[1].Value)
	assert.Empty(t, got.Properties[1].VariantPrefix)
}

func TestParseClassesDisambiguation(t *testing.T) {
	tests := []struct {
		class    string
		property string
		value    string
	}{
		{"text-sm", "fontSize", "sm"},
		{"text-2xl", "fontSize", "2xl"},
		{"text-center", "textAlign", "center"},
		{"text-slate-700", "color", "slate-700"},
		{"border", "borderWidth", DefaultKey},
		{"border-2", "borderWidth", "2"},
		{"border-dashed", "borderStyle", "dashed"},
		{"border-red-500", "borderColor", "red-500"},
		{"bg-primary", "backgroundColor", "primary"},
		{"rounded", "borderRadius", DefaultKey},
		{"rounded-lg", "borderRadius", "lg"},
		{"shadow", "boxShadow", DefaultKey},
		{"shadow-md", "boxShadow", "md"},
		{"shadow-black/20", "shadowColor", "black/20"},
		{"-mt-4", "marginTop", "-4"},
		{"p-[13px]", "padding", "[13px]"},
		{"font-semibold", "fontWeight", "semibold"},
		{"flex", "display", "flex"},
		{"flex-col", "flexDirection", "col"},
		{"opacity-50", "opacity", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			p, ok := ParseClass(Default, tt.class)
			require.True(t, ok)
			assert.Equal(t, tt.property, p.Property)
			assert.Equal(t, tt.value, p.Value)
		})
	}
}

func TestParseClassesOther(t *testing.T) {
	got := ParseClasses("bg-cover border-x -p-4 group peer p-2")
	require.Len(t, got.Properties, 1)
	assert.Equal(t, []string{"bg-cover", "border-x", "-p-4", "group", "peer"}, got.Other)
}

func TestSplitVariant(t *testing.T) {
	tests := []struct {
		class, prefix, core string
	}{
		{"p-4", "", "p-4"},
		{"md:hover:p-4", "md:hover:", "p-4"},
		{"[&:hover]:p-4", "[&:hover]:", "p-4"},
		{"bg-[color:red]", "", "bg-[color:red]"},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			prefix, core := SplitVariant(tt.class)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.core, core)
		})
	}
}

func TestBuildClass(t *testing.T) {
	tests := []struct {
		name     string
		property string
		value    string
		prefix   string
		want     string
	}{
		{"scale key", "padding", "4", "", "p-4"},
		{"variant prefix", "backgroundColor", "red-500", "sm:", "sm:bg-red-500"},
		{"prefix without colon", "padding", "2", "md", "md:p-2"},
		{"bare default radius", "borderRadius", DefaultKey, "", "rounded"},
		{"bare default shadow", "boxShadow", "", "", "shadow"},
		{"bare default border", "borderWidth", DefaultKey, "", "border"},
		{"arbitrary length", "padding", "13px", "", "p-[13px]"},
		{"arbitrary with spaces", "boxShadow", "0 1px 2px red", "", "shadow-[0_1px_2px_red]"},
		{"negative", "marginTop", "-4", "", "-mt-4"},
		{"keyword", "display", "grid", "", "grid"},
		{"already arbitrary", "width", "[37%]", "", "w-[37%]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildClass(tt.property, tt.value, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildClassErrors(t *testing.T) {
	_, err := BuildClass("nope", "1", "")
	require.ErrorIs(t, err, apperr.ErrUnparsable)

	_, err = BuildClass("padding", "", "")
	require.ErrorIs(t, err, apperr.ErrUnparsable)
}

func TestClassForValue(t *testing.T) {
	tests := []struct {
		css, value, prefix, want string
	}{
		{"padding", "16px", "", "p-4"},
		{"padding", "1rem", "", "p-4"},
		{"paddingTop", "2px", "", "pt-0.5"},
		{"padding", "13px", "", "p-[13px]"},
		{"margin-top", "-16px", "", "-mt-4"},
		{"margin", "0px", "", "m-0"},
		{"width", "1px", "", "w-px"},
		{"border-radius", "4px", "", "rounded"},
		{"border-radius", "8px", "lg:", "lg:rounded-lg"},
		{"border-width", "1px", "", "border"},
		{"font-size", "14px", "", "text-sm"},
		{"font-weight", "700", "", "font-bold"},
		{"font-size", "13px", "", "text-[13px]"},
		{"font-weight", "450", "", "font-[450]"},
		{"opacity", "0.5", "", "opacity-50"},
		{"box-shadow", "none", "", "shadow-none"},
		{"box-shadow", "rgba(0, 0, 0, 0.1) 0px 4px 6px -1px, rgba(0, 0, 0, 0.1) 0px 2px 4px -2px", "", "shadow-md"},
		{"background-color", "var(--color-red-500)", "", "bg-red-500"},
		{"background-color", "rgb(239, 68, 68)", "hover:", "hover:bg-[rgb(239,_68,_68)]"},
		{"text-align", "center", "", "text-center"},
		{"display", "flex", "", "flex"},
	}

	for _, tt := range tests {
		t.Run(tt.css+"="+tt.value, func(t *testing.T) {
			got, err := ClassForValue(tt.css, tt.value, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassForValueUnknownProperty(t *testing.T) {
	_, err := ClassForValue("grid-template-areas", "a", "")
	require.ErrorIs(t, err, apperr.ErrUnparsable)
}

func TestValueForClass(t *testing.T) {
	tests := []struct {
		class string
		want  Resolved
	}{
		{"p-4", Resolved{Property: "padding", CSS: "padding", Value: "16px"}},
		{"-mt-4", Resolved{Property: "marginTop", CSS: "margin-top", Value: "-16px"}},
		{"rounded", Resolved{Property: "borderRadius", CSS: "border-radius", Value: "4px"}},
		{"sm:text-lg", Resolved{Property: "fontSize", CSS: "font-size", Value: "18px"}},
		{"bg-red-500", Resolved{Property: "backgroundColor", CSS: "background-color", Value: "var(--color-red-500)"}},
		{"shadow-[0_1px_2px_red]", Resolved{Property: "boxShadow", CSS: "box-shadow", Value: "0 1px 2px red"}},
		{"opacity-50", Resolved{Property: "opacity", CSS: "opacity", Value: "0.5"}},
		{"text-[13px]", Resolved{Property: "fontSize", CSS: "font-size", Value: "13px"}},
		{"font-[450]", Resolved{Property: "fontWeight", CSS: "font-weight", Value: "450"}},
		{"text-[#ff0000]", Resolved{Property: "color", CSS: "color", Value: "#ff0000"}},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			got, err := ValueForClass(tt.class)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueClassRoundTrip(t *testing.T) {
	for _, class := range []string{"p-4", "m-0", "-ml-2", "rounded-xl", "text-base", "font-medium", "border-4", "opacity-75", "shadow-lg", "text-[13px]", "font-[450]"} {
		t.Run(class, func(t *testing.T) {
			r, err := ValueForClass(class)
			require.NoError(t, err)
			back, err := ClassForValue(r.CSS, r.Value, "")
			require.NoError(t, err)
			assert.Equal(t, class, back)
		})
	}
}

func TestClassStringOperations(t *testing.T) {
	out, ok := Replace("flex  p-4 text-sm", "p-4", "p-6")
	assert.True(t, ok)
	assert.Equal(t, "flex p-6 text-sm", out)

	out, ok = Replace("flex p-4", "p-8", "p-6")
	assert.False(t, ok)
	assert.Equal(t, "flex p-4", out)

	out, _ = Replace("flex p-4 text-sm", "p-4", "")
	assert.Equal(t, "flex text-sm", out)

	assert.Equal(t, "flex p-4", Add("flex", "p-4"))
	assert.Equal(t, "flex p-4", Add("flex p-4", "p-4"))
	assert.Equal(t, "flex text-sm", Remove("flex p-4 text-sm p-4", "p-4"))
}

func TestSetProperty(t *testing.T) {
	tests := []struct {
		name, classes, property, value, prefix, want string
	}{
		{"replace in place", "flex p-4 text-sm", "padding", "6", "", "flex p-6 text-sm"},
		{"append when missing", "flex", "padding", "2", "", "flex p-2"},
		{"variant kept separate", "p-4 sm:p-8", "padding", "10", "sm:", "p-4 sm:p-10"},
		{"remove with empty value", "flex p-4 text-sm", "padding", "", "", "flex text-sm"},
		{"font size not confused with color", "text-sm text-red-500", "color", "blue-600", "", "text-sm text-blue-600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetProperty(tt.classes, tt.property, tt.value, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
