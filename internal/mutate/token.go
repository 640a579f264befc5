package mutate

import (
	"encoding/json"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/designtoken"
	"github.com/yacobolo/designsync/internal/shadow"
)

// TokenValue converts a request value to a design-token $value. JSON objects,
// arrays, numbers and booleans are kept as JSON; anything else is a string.
func TokenValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && json.Valid([]byte(trimmed)) && trimmed[0] != '"' {
		return json.RawMessage(trimmed)
	}
	return raw
}

// SetTokenValue rewrites the $value of the token at the dotted path.
func SetTokenValue(data []byte, path string, v any) ([]byte, error) {
	keys, err := tokenPath(path)
	if err != nil {
		return nil, err
	}
	return designtoken.SetValue(data, keys, v)
}

// CreateTokenValue sets the token at path, inserting it with typ when it
// does not exist yet.
func CreateTokenValue(data []byte, path, typ string, v any) ([]byte, error) {
	keys, err := tokenPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := designtoken.Lookup(data, keys); err == nil {
		return designtoken.SetValue(data, keys, v)
	}
	return designtoken.Insert(data, keys, typ, v)
}

// SetShadowToken writes a raw shadow value to the shadow token at path in the
// nested token form. strippedInset reports that an inset flag could not be
// represented and was dropped.
func SetShadowToken(data []byte, path, raw string) (out []byte, strippedInset bool, err error) {
	v, strippedInset, err := shadowTokenValue(raw)
	if err != nil {
		return nil, false, err
	}
	out, err = SetTokenValue(data, path, v)
	return out, strippedInset, err
}

// CreateShadowToken is SetShadowToken that inserts a missing token with
// $type "shadow".
func CreateShadowToken(data []byte, path, raw string) (out []byte, strippedInset bool, err error) {
	v, strippedInset, err := shadowTokenValue(raw)
	if err != nil {
		return nil, false, err
	}
	out, err = CreateTokenValue(data, path, designtoken.TypeShadow, v)
	return out, strippedInset, err
}

func shadowTokenValue(raw string) (any, bool, error) {
	layers, err := shadow.ParseLayers(raw)
	if err != nil {
		return nil, false, err
	}
	if len(layers) == 0 {
		return nil, false, apperr.Unparsable("shadow token value", raw)
	}
	v, stripped := shadow.ToNestedToken(layers)
	return v, stripped, nil
}

func tokenPath(path string) ([]string, error) {
	keys := designtoken.ParsePath(path)
	if len(keys) == 0 {
		return nil, apperr.NotFound("empty token path")
	}
	return keys, nil
}
