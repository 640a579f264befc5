package designtoken

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/yacobolo/designsync/internal/apperr"
)

// SetValue replaces the $value of the token at path with v. Only the bytes of
// the old value change. A value written on a single line stays on one line;
// otherwise it is indented to match the surrounding document.
func SetValue(data []byte, path []string, v any) ([]byte, error) {
	keys := valueKeys(path)
	old, dt, end, err := jsonparser.Get(data, keys...)
	if err != nil {
		return nil, apperr.NotFound("token path %s", displayPath(path))
	}

	start := valueStart(old, dt, end)
	var raw []byte
	if bytes.IndexByte(data[start:end], '\n') < 0 {
		raw, err = encode(v, "", "")
	} else {
		raw, err = encode(v, lineIndent(data, start), IndentUnit(data))
	}
	if err != nil {
		return nil, err
	}

	out := append([]byte(nil), data[:start]...)
	out = append(out, raw...)
	return append(out, data[end:]...), nil
}

// Insert adds a new token {"$type": typ, "$value": v} at path. Missing groups
// are created. The member is appended after the last member of the deepest
// existing group. An existing token at path is an error; use SetValue for it.
func Insert(data []byte, path []string, typ string, v any) ([]byte, error) {
	if len(path) == 0 {
		return nil, apperr.NotFound("empty token path")
	}
	if _, _, _, err := jsonparser.Get(data, path...); err == nil {
		return nil, fmt.Errorf("token %s already exists", displayPath(path))
	}

	// deepest existing ancestor group
	depth := len(path) - 1
	for ; depth > 0; depth-- {
		if _, dt, _, err := jsonparser.Get(data, path[:depth]...); err == nil && dt == jsonparser.Object {
			break
		}
	}
	parent := path[:depth]

	obj, dt, end, err := jsonparser.Get(data, parent...)
	if err != nil || dt != jsonparser.Object {
		return nil, apperr.NotFound("token group %s", displayPath(parent))
	}
	open := end - len(obj)
	closeIdx := end - 1

	unit := IndentUnit(data)
	outer := lineIndent(data, open)
	member := outer + unit

	// build the nested member, innermost first
	var token any = tokenObject{Type: typ, Value: v}
	for i := len(path) - 1; i > depth; i-- {
		token = map[string]any{path[i]: token}
	}
	raw, err := encode(token, member, unit)
	if err != nil {
		return nil, err
	}
	key, _ := json.Marshal(path[depth])
	entry := append(append(key, ':', ' '), raw...)

	last := closeIdx - 1
	for last > open && isSpace(data[last]) {
		last--
	}

	var out []byte
	if last == open {
		// empty group
		out = append(out, data[:open+1]...)
		out = append(out, '\n')
		out = append(out, member...)
		out = append(out, entry...)
		out = append(out, '\n')
		out = append(out, outer...)
		return append(out, data[closeIdx:]...), nil
	}
	out = append(out, data[:last+1]...)
	out = append(out, ",\n"...)
	out = append(out, member...)
	out = append(out, entry...)
	return append(out, data[last+1:]...), nil
}

// tokenObject keeps $type before $value when encoded.
type tokenObject struct {
	Type  string `json:"$type,omitempty"`
	Value any    `json:"$value"`
}

// IndentUnit returns the indentation of the first indented line, or two spaces.
func IndentUnit(data []byte) string {
	for _, line := range bytes.Split(data, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) > 0 && len(trimmed) < len(line) {
			return string(line[:len(line)-len(trimmed)])
		}
	}
	return "  "
}

func valueKeys(path []string) []string {
	return append(append([]string(nil), path...), "$value")
}

// valueStart converts jsonparser's end offset back to the first byte of the
// value. String values are reported without their quotes.
func valueStart(value []byte, dt jsonparser.ValueType, end int) int {
	if dt == jsonparser.String {
		return end - len(value) - 2
	}
	return end - len(value)
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(data []byte, pos int) string {
	lineStart := bytes.LastIndexByte(data[:pos], '\n') + 1
	i := lineStart
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	return string(data[lineStart:i])
}

func encode(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode token value: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
