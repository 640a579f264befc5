package mutate

import (
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/tokens"
)

// SetSassVariable rewrites the value of $name. The !default flag and the
// spacing around the value are kept. A variable declared more than once is
// ambiguous.
func SetSassVariable(text, name, value string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "$")
	if err := checkSassValue(name, value); err != nil {
		return "", err
	}
	vars := tokens.FindSassVariables(text, name)
	switch len(vars) {
	case 0:
		return "", apperr.NotFound("sass variable $%s", name)
	case 1:
		v := vars[0]
		return text[:v.ValueStart] + value + text[v.ValueEnd:], nil
	}
	return "", apperr.Ambiguous("$"+name, "sass file", len(vars))
}

// AppendSassVariable sets $name, appending a declaration at the end of the
// file when it is not declared yet.
func AppendSassVariable(text, name, value string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "$")
	if err := checkSassValue(name, value); err != nil {
		return "", err
	}
	if len(tokens.FindSassVariables(text, name)) > 0 {
		return SetSassVariable(text, name, value)
	}

	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("$" + name + ": " + value + ";\n")
	return b.String(), nil
}

func checkSassValue(name, value string) error {
	if name == "" {
		return apperr.NotFound("empty sass variable name")
	}
	if strings.TrimSpace(value) == "" || strings.Contains(value, ";") || strings.Contains(value, "!default") {
		return apperr.Unparsable("$"+name+" value", value)
	}
	return nil
}
