package plugins

import (
	"context"
	"fmt"
	"time"

	serializer "github.com/paullouismas/better-json-serializer"
)

// Timestamp handles time.Time values as canonical UTC RFC3339 strings.
// Encoding normalizes to UTC and RFC3339Nano (Go trims trailing zeros);
// decoding accepts RFC3339 with or without fractional seconds. The YAML
// layer resolves timestamp scalars into time.Time natively, so decode
// accepts both representations.
func Timestamp() serializer.Plugin {
	return must(serializer.NewPlugin[time.Time](TypeTimestamp,
		func(ctx context.Context, key string, v time.Time) (any, error) {
			return v.UTC().Format(time.RFC3339Nano), nil
		},
		func(ctx context.Context, key string, raw any) (time.Time, error) {
			switch t := raw.(type) {
			case time.Time:
				return t, nil
			case string:
				return parseRFC3339(t)
			default:
				return time.Time{}, fmt.Errorf("timestamp payload must be a string, got %T", raw)
			}
		},
	))
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
