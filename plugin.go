package serializer

import (
	"context"
	"fmt"
	"reflect"
)

// EncodeFunc converts an extension-owned value into a tree the underlying
// format can render: maps with string keys, slices, strings, numbers, bools,
// nil. The key is the node's position in the enclosing tree ("" at the root).
type EncodeFunc func(ctx context.Context, key string, v any) (any, error)

// DecodeFunc is the inverse of EncodeFunc, rebuilding the original value from
// the plain tree a plugin's encode produced.
type DecodeFunc func(ctx context.Context, key string, v any) (any, error)

// Plugin binds one type identifier to an encode/decode pair. Decoding what a
// plugin encoded must yield a value observably equivalent to the original.
// Plugins are immutable after construction; NewPlugin and NewValuePlugin are
// the only sanctioned ways to build one.
type Plugin struct {
	typeID string
	goType reflect.Type // nil for value-classified identifiers (nan, null, ...)
	encode EncodeFunc
	decode DecodeFunc
}

// TypeID returns the identifier the plugin registered under. It doubles as
// the "type" field of the wire envelope.
func (p Plugin) TypeID() string { return p.typeID }

func (p Plugin) valid() bool { return p.typeID != "" && p.encode != nil && p.decode != nil }

// NewPlugin builds a Plugin handling values of type T. The serializer matches
// candidate values against T (exactly, or by interface satisfaction when T is
// an interface type), so every plugin states both its wire identifier and its
// claimed type explicitly.
func NewPlugin[T any](typeID string, encode func(ctx context.Context, key string, v T) (any, error), decode func(ctx context.Context, key string, v any) (T, error)) (Plugin, error) {
	if typeID == "" {
		return Plugin{}, singleIssue(CodeInvalidPlugin, "type id must be a non-empty string")
	}
	if encode == nil || decode == nil {
		return Plugin{}, singleIssue(CodeInvalidPlugin, "encode and decode must both be non-nil")
	}
	return Plugin{
		typeID: typeID,
		goType: reflect.TypeOf((*T)(nil)).Elem(),
		encode: func(ctx context.Context, key string, v any) (any, error) {
			tv, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("value of type %T does not belong to plugin %q", v, typeID)
			}
			return encode(ctx, key, tv)
		},
		decode: func(ctx context.Context, key string, v any) (any, error) {
			return decode(ctx, key, v)
		},
	}, nil
}

// NewValuePlugin builds a Plugin bound to an identifier only, with no claimed
// Go type. It is reachable through the special value classifications
// ("undefined", "null", "infinity", "nan") and through envelopes carrying its
// identifier on decode.
func NewValuePlugin(typeID string, encode EncodeFunc, decode DecodeFunc) (Plugin, error) {
	if typeID == "" {
		return Plugin{}, singleIssue(CodeInvalidPlugin, "type id must be a non-empty string")
	}
	if encode == nil || decode == nil {
		return Plugin{}, singleIssue(CodeInvalidPlugin, "encode and decode must both be non-nil")
	}
	return Plugin{typeID: typeID, encode: encode, decode: decode}, nil
}
