package plugins

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	serializer "github.com/paullouismas/better-json-serializer"
)

// Regexp handles *regexp.Regexp values by their source text. Go regular
// expressions carry flags inline ((?i), (?m), ...), so the source alone
// round-trips both pattern and flags.
func Regexp() serializer.Plugin {
	return must(serializer.NewPlugin[*regexp.Regexp](TypeRegexp,
		func(ctx context.Context, key string, v *regexp.Regexp) (any, error) {
			if v == nil {
				return nil, errors.New("cannot encode nil *regexp.Regexp")
			}
			return v.String(), nil
		},
		func(ctx context.Context, key string, raw any) (*regexp.Regexp, error) {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("regexp payload must be a string, got %T", raw)
			}
			return regexp.Compile(s)
		},
	))
}
