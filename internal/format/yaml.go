package format

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders v as YAML after running the visitor over the tree.
// indent <= 0 keeps the encoder's default width.
func MarshalYAML(v any, visit Visitor, indent int) ([]byte, error) {
	tree, err := encodeNode("", v, visit)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML parses YAML text, normalizes it into the JSON-like tree the
// visitor contract expects, and runs the visitor bottom-up over it.
func UnmarshalYAML(data []byte, visit Visitor) (any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return decodeNode("", normalizeYAML(root), visit)
}

// normalizeYAML converts map[any]any nodes produced for non-string YAML keys
// into map[string]any recursively, matching the JSON tree shape.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = normalizeYAML(vv)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeYAML(vv)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	}
	return v
}
