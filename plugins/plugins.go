// Package plugins bundles the stock extension plugins: ordered unique
// sequences, arbitrary-keyed maps, calendar timestamps, arbitrary-precision
// integers and pattern matchers.
package plugins

import (
	serializer "github.com/paullouismas/better-json-serializer"
)

// Wire identifiers of the bundled plugins.
const (
	TypeSet       = "set"
	TypeMap       = "map"
	TypeTimestamp = "time"
	TypeBigInt    = "bigint"
	TypeRegexp    = "regexp"
)

// Defaults returns one instance of every bundled plugin, in registration
// order.
func Defaults() []serializer.Plugin {
	return []serializer.Plugin{Set(), Map(), Timestamp(), BigInt(), Regexp()}
}

// WithDefaults registers every bundled plugin at construction time.
func WithDefaults() serializer.Option {
	return serializer.WithPlugins(Defaults()...)
}

// must unwraps plugin construction for the statically valid bundled plugins,
// in the spirit of regexp.MustCompile.
func must(p serializer.Plugin, err error) serializer.Plugin {
	if err != nil {
		panic(err)
	}
	return p
}
