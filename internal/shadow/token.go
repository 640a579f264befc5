package shadow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
)

// TokenLayer is the nested design-token form of a layer. It has no inset
// field, so converting an inset layer to a token is lossy.
type TokenLayer struct {
	Color   string    `json:"color"`
	OffsetX Dimension `json:"offsetX"`
	OffsetY Dimension `json:"offsetY"`
	Blur    Dimension `json:"blur"`
	Spread  Dimension `json:"spread"`
}

// Dimension is a length written either as a string ("4px"), a bare number
// (0) or a {"value": 4, "unit": "px"} object. It always marshals as a string.
type Dimension string

// UnmarshalJSON accepts all three dimension spellings.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*d = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Dimension(s)
	case data[0] == '{':
		var obj struct {
			Value json.Number `json:"value"`
			Unit  string      `json:"unit"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*d = Dimension(obj.Value.String() + obj.Unit)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("dimension: %w", err)
		}
		*d = Dimension(n.String())
	}
	return nil
}

// ToNestedToken converts layers to the value of a shadow token: a single
// object for one layer, an array otherwise. strippedInset reports whether an
// inset flag was dropped so the caller can surface the loss.
func ToNestedToken(layers []Layer) (value any, strippedInset bool) {
	out := make([]TokenLayer, len(layers))
	for i, l := range layers {
		if l.Inset {
			strippedInset = true
		}
		out[i] = TokenLayer{
			Color:   l.Color,
			OffsetX: Dimension(orZero(l.OffsetX)),
			OffsetY: Dimension(orZero(l.OffsetY)),
			Blur:    Dimension(orZero(l.Blur)),
			Spread:  Dimension(orZero(l.Spread)),
		}
	}
	if len(out) == 1 {
		return out[0], strippedInset
	}
	return out, strippedInset
}

// FromNestedToken decodes a raw "$value" of a shadow token. A value that is
// neither a layer object nor an array of them is unparsable.
func FromNestedToken(raw []byte) ([]Layer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, apperr.Unparsable("shadow token value", "")
	}

	var tokenLayers []TokenLayer
	switch raw[0] {
	case '{':
		var tl TokenLayer
		if err := json.Unmarshal(raw, &tl); err != nil {
			return nil, apperr.Unparsable("shadow token value", string(raw))
		}
		tokenLayers = []TokenLayer{tl}
	case '[':
		if err := json.Unmarshal(raw, &tokenLayers); err != nil {
			return nil, apperr.Unparsable("shadow token value", string(raw))
		}
	case '"':
		// a string $value is a raw shadow (or an alias the caller resolves)
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, apperr.Unparsable("shadow token value", string(raw))
		}
		if strings.HasPrefix(s, "{") {
			return nil, apperr.Unparsable("shadow token alias", s)
		}
		return ParseLayers(s)
	default:
		return nil, apperr.Unparsable("shadow token value", string(raw))
	}

	layers := make([]Layer, len(tokenLayers))
	for i, tl := range tokenLayers {
		layers[i] = Layer{
			OffsetX: orZero(string(tl.OffsetX)),
			OffsetY: orZero(string(tl.OffsetY)),
			Blur:    orZero(string(tl.Blur)),
			Spread:  orZero(string(tl.Spread)),
			Color:   tl.Color,
		}
	}
	return layers, nil
}
