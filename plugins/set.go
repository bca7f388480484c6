package plugins

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	serializer "github.com/paullouismas/better-json-serializer"
)

// Set handles mapset.Set[any] values, encoding them as a plain array of
// elements. Round-tripping preserves membership; element order on the wire is
// not significant. Elements must be comparable and representable by the
// underlying format (or owned by another registered plugin).
func Set() serializer.Plugin {
	return must(serializer.NewPlugin[mapset.Set[any]](TypeSet,
		func(ctx context.Context, key string, v mapset.Set[any]) (any, error) {
			return v.ToSlice(), nil
		},
		func(ctx context.Context, key string, raw any) (mapset.Set[any], error) {
			items, ok := raw.([]any)
			if !ok {
				return nil, fmt.Errorf("set payload must be an array, got %T", raw)
			}
			return mapset.NewSet(items...), nil
		},
	))
}
