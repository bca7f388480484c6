package plugins

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	serializer "github.com/paullouismas/better-json-serializer"
)

// BigInt handles *big.Int values as decimal strings, so magnitude is never
// capped by the format layer's float representation.
func BigInt() serializer.Plugin {
	return must(serializer.NewPlugin[*big.Int](TypeBigInt,
		func(ctx context.Context, key string, v *big.Int) (any, error) {
			if v == nil {
				return nil, errors.New("cannot encode nil *big.Int")
			}
			return v.String(), nil
		},
		func(ctx context.Context, key string, raw any) (*big.Int, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("bigint payload must be a string, got %T", raw)
			}
			n, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, fmt.Errorf("invalid decimal integer %q", s)
			}
			return n, nil
		},
	))
}
