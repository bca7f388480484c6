package plugins

import (
	"context"
	"fmt"
	"sort"

	serializer "github.com/paullouismas/better-json-serializer"
)

// Map handles map[any]any values, the keyed collection whose keys are not
// restricted to strings. Entries travel as an array of [key, value] pairs,
// sorted by the key's string form so output is deterministic. Keys must be
// comparable; keys and values must be representable by the underlying format
// (or owned by another registered plugin).
func Map() serializer.Plugin {
	return must(serializer.NewPlugin[map[any]any](TypeMap,
		func(ctx context.Context, key string, v map[any]any) (any, error) {
			keys := make([]any, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
			})
			pairs := make([]any, 0, len(v))
			for _, k := range keys {
				pairs = append(pairs, []any{k, v[k]})
			}
			return pairs, nil
		},
		func(ctx context.Context, key string, raw any) (map[any]any, error) {
			items, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("map payload must be an array of pairs, got %T", raw)
			}
			out := make(map[any]any, len(items))
			for i, it := range items {
				pair, ok := it.([]any)
				if !ok || len(pair) != 2 {
					return nil, fmt.Errorf("map entry %d is not a [key, value] pair", i)
				}
				out[pair[0]] = pair[1]
			}
			return out, nil
		},
	))
}
