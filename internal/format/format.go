// Package format is the underlying tree-format layer. It renders and parses
// JSON and YAML trees, invoking a per-node visitor in the format's native
// traversal order: pre-order while rendering, bottom-up after parsing. It
// knows nothing about plugins or envelopes; the visitor carries that logic.
package format

import (
	"reflect"
	"strconv"
)

// Visitor is invoked once per node with the node's key within its parent
// ("" at the root, the decimal index inside arrays) and its value. The
// returned value replaces the node.
type Visitor func(key string, v any) (any, error)

// encodeNode applies the visitor pre-order and rebuilds the tree. Children of
// whatever the visitor returned are visited in turn, so a replacement may
// itself contain values needing further visits.
func encodeNode(key string, v any, visit Visitor) (any, error) {
	if visit != nil {
		nv, err := visit(key, v)
		if err != nil {
			return nil, err
		}
		v = nv
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ev, err := encodeNode(k, vv, visit)
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i := range t {
			ev, err := encodeNode(strconv.Itoa(i), t[i], visit)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	}
	return encodeReflect(v, visit)
}

// encodeReflect extends the walk to other string-keyed maps and slices so
// nested extension values inside e.g. map[string]time.Time still get visited.
// Everything else (structs, byte slices, scalars) is a leaf the rendering
// layer handles natively.
func encodeReflect(v any, visit Visitor) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			ev, err := encodeNode(k, iter.Value().Interface(), visit)
			if err != nil {
				return nil, err
			}
			out[k] = ev
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := encodeNode(strconv.Itoa(i), rv.Index(i).Interface(), visit)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	}
	return v, nil
}

// decodeNode applies the visitor bottom-up: children first, then the node
// itself, so a visitor unwrapping a container already sees unwrapped
// children.
func decodeNode(key string, v any, visit Visitor) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			dv, err := decodeNode(k, vv, visit)
			if err != nil {
				return nil, err
			}
			t[k] = dv
		}
	case []any:
		for i := range t {
			dv, err := decodeNode(strconv.Itoa(i), t[i], visit)
			if err != nil {
				return nil, err
			}
			t[i] = dv
		}
	}
	if visit == nil {
		return v, nil
	}
	return visit(key, v)
}
