package format

import (
	"strings"

	json "github.com/goccy/go-json"
)

// MarshalJSON renders v as JSON text after running the visitor over the tree.
// indent <= 0 renders compact output; a positive indent renders that many
// spaces per nesting level.
func MarshalJSON(v any, visit Visitor, indent int) ([]byte, error) {
	tree, err := encodeNode("", v, visit)
	if err != nil {
		return nil, err
	}
	if indent > 0 {
		return json.MarshalIndent(tree, "", strings.Repeat(" ", indent))
	}
	return json.Marshal(tree)
}

// UnmarshalJSON parses JSON text into the generic tree (map[string]any,
// []any, float64, string, bool, nil) and runs the visitor bottom-up over it.
func UnmarshalJSON(data []byte, visit Visitor) (any, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return decodeNode("", root, visit)
}
