// Package designtoken reads and edits nested design-token files that follow
// the $type / $value / $description convention (*.tokens, *.tokens.json).
//
// A node is a token when it carries "$value". Any other object is a group. A
// group's "$type" is inherited by its direct children only; deeper descendants
// have to restate it.
package designtoken

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/shadow"
)

// TypeShadow is the $type discriminator of shadow tokens.
const TypeShadow = "shadow"

// Node is one token in a file.
type Node struct {
	Path        []string
	Type        string // own $type, or the direct parent group's
	Value       []byte // raw JSON of $value, strings keep their quotes
	ValueType   jsonparser.ValueType
	Description string
}

// Name joins the token path with "-", e.g. ["shadow","md"] -> "shadow-md".
func (n Node) Name() string {
	return Name(n.Path)
}

// Name joins a token path with "-".
func Name(path []string) string {
	return strings.Join(path, "-")
}

// ParsePath splits a dotted token path ("shadow.md").
func ParsePath(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ".") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Walk calls fn for every token in data, in document order.
func Walk(data []byte, fn func(Node) error) error {
	if _, dt, _, err := jsonparser.Get(data); err != nil || dt != jsonparser.Object {
		return apperr.Unparsable("design token file", firstLine(data))
	}
	return walkGroup(data, nil, fn)
}

func walkGroup(group []byte, path []string, fn func(Node) error) error {
	groupType, _ := jsonparser.GetString(group, "$type")

	err := jsonparser.ObjectEach(group, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		name := string(key)
		if strings.HasPrefix(name, "$") || dt != jsonparser.Object {
			return nil
		}
		childPath := append(append([]string(nil), path...), name)

		if _, _, _, err := jsonparser.Get(value, "$value"); err != nil {
			return walkGroup(value, childPath, fn)
		}
		node, err := readNode(value, childPath, groupType)
		if err != nil {
			return err
		}
		return fn(node)
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", displayPath(path), err)
	}
	return nil
}

func readNode(obj []byte, path []string, inherited string) (Node, error) {
	raw, dt, _, err := jsonparser.Get(obj, "$value")
	if err != nil {
		return Node{}, apperr.NotFound("token %s has no $value", displayPath(path))
	}
	if dt == jsonparser.String {
		raw = quote(raw)
	}

	typ, _ := jsonparser.GetString(obj, "$type")
	if typ == "" {
		typ = inherited
	}
	desc, _ := jsonparser.GetString(obj, "$description")

	return Node{
		Path:        path,
		Type:        typ,
		Value:       append([]byte(nil), raw...),
		ValueType:   dt,
		Description: desc,
	}, nil
}

// Lookup returns the token at path, or apperr.ErrNotFound.
func Lookup(data []byte, path []string) (Node, error) {
	if len(path) == 0 {
		return Node{}, apperr.NotFound("empty token path")
	}
	obj, dt, _, err := jsonparser.Get(data, path...)
	if err != nil || dt != jsonparser.Object {
		return Node{}, apperr.NotFound("token path %s", displayPath(path))
	}

	parentType, _ := jsonparser.GetString(data, append(append([]string(nil), path[:len(path)-1]...), "$type")...)
	return readNode(obj, path, parentType)
}

// Shadow is a decoded shadow token.
type Shadow struct {
	Path        []string
	Layers      []shadow.Layer
	Description string
}

// Name joins the token path with "-".
func (s Shadow) Name() string {
	return Name(s.Path)
}

// ShadowTokens returns every shadow token whose $value is a layer object or
// an array of them. Values that do not decode are skipped.
func ShadowTokens(data []byte) ([]Shadow, error) {
	var out []Shadow
	err := Walk(data, func(n Node) error {
		if n.Type != TypeShadow {
			return nil
		}
		if n.ValueType != jsonparser.Object && n.ValueType != jsonparser.Array {
			return nil
		}
		layers, err := shadow.FromNestedToken(n.Value)
		if err != nil {
			return nil
		}
		out = append(out, Shadow{Path: n.Path, Layers: layers, Description: n.Description})
		return nil
	})
	return out, err
}

func displayPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, ".")
}

// quote restores the quotes jsonparser strips from string values. The content
// is still escaped, so the result is valid JSON.
func quote(raw []byte) []byte {
	out := make([]byte, 0, len(raw)+2)
	out = append(out, '"')
	out = append(out, raw...)
	return append(out, '"')
}

func firstLine(data []byte) string {
	s := strings.TrimSpace(string(data))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
