package serializer

import (
	"context"
	"fmt"
	"math"

	"github.com/paullouismas/better-json-serializer/internal/format"
)

// envelopeVersion is the only wire envelope version this package reads or
// writes. Anything else on decode is a hard error, never a silent upgrade or
// downgrade.
const envelopeVersion = 1

// Envelope field names on the wire.
const (
	fieldVersion = "version"
	fieldType    = "type"
	fieldValue   = "value"
)

// Special classification identifiers. They are checked in this order before
// any registry type claim: NaN and the infinities are numeric values whose
// type alone cannot distinguish them from finite numbers, and null must be
// handled before anything that would inspect the value.
const (
	TypeUndefined = "undefined"
	TypeNull      = "null"
	TypeInfinity  = "infinity"
	TypeNaN       = "nan"
)

// Undefined is a sentinel standing in for a missing value, classified ahead
// of null during encode. Register a plugin under TypeUndefined to give it a
// wire representation; otherwise it passes through as an empty object.
var Undefined undefinedValue

type undefinedValue struct{}

func classifySpecial(v any) (string, bool) {
	if _, ok := v.(undefinedValue); ok {
		return TypeUndefined, true
	}
	if v == nil {
		return TypeNull, true
	}
	switch f := v.(type) {
	case float64:
		if math.IsInf(f, 0) {
			return TypeInfinity, true
		}
		if math.IsNaN(f) {
			return TypeNaN, true
		}
	case float32:
		if math.IsInf(float64(f), 0) {
			return TypeInfinity, true
		}
		if math.IsNaN(float64(f)) {
			return TypeNaN, true
		}
	}
	return "", false
}

// codecPass is one serialize or deserialize traversal's view of the shared
// state: the registry plus the settings snapshotted at pass start.
type codecPass struct {
	reg    *registry
	marker string
}

// encodeVisitor intercepts every node on the way out: the user transform runs
// first, then the node is matched against the registry and, when claimed,
// replaced by its envelope. Unclaimed nodes pass through untouched.
func (p codecPass) encodeVisitor(ctx context.Context, transform Transform) format.Visitor {
	return func(key string, v any) (any, error) {
		if transform != nil {
			tv, err := transform(key, v)
			if err != nil {
				return nil, Issues{{
					Path:    keyPath(key),
					Code:    CodeTransform,
					Message: "transform hook failed",
					Cause:   err,
					Params:  map[string]any{"key": key},
				}}
			}
			v = tv
		}
		var (
			pl Plugin
			id string
			ok bool
		)
		if sid, special := classifySpecial(v); special {
			id = sid
			pl, ok = p.reg.lookup(sid)
		} else {
			pl, id, ok = p.reg.lookupValue(v)
		}
		if !ok {
			return v, nil
		}
		out, err := pl.encode(ctx, key, v)
		if err != nil {
			return nil, Issues{{
				Path:    keyPath(key),
				Code:    CodePluginEncode,
				Message: fmt.Sprintf("plugin %q failed to encode", id),
				Cause:   err,
				Params:  map[string]any{"type": id, "key": key},
			}}
		}
		return map[string]any{p.marker: map[string]any{
			fieldVersion: envelopeVersion,
			fieldType:    id,
			fieldValue:   out,
		}}, nil
	}
}

// decodeVisitor intercepts every node on the way in, bottom-up: envelopes are
// unwrapped and dispatched to their plugin, then the user transform runs on
// the result.
func (p codecPass) decodeVisitor(ctx context.Context, transform Transform) format.Visitor {
	return func(key string, v any) (any, error) {
		out, err := p.decodeEnvelope(ctx, key, v)
		if err != nil {
			return nil, err
		}
		if transform != nil {
			tv, err := transform(key, out)
			if err != nil {
				return nil, Issues{{
					Path:    keyPath(key),
					Code:    CodeTransform,
					Message: "transform hook failed",
					Cause:   err,
					Params:  map[string]any{"key": key},
				}}
			}
			out = tv
		}
		return out, nil
	}
}

func (p codecPass) decodeEnvelope(ctx context.Context, key string, v any) (any, error) {
	// An envelope is an object whose single property is the marker key. An
	// object carrying sibling keys is user data, never an envelope; this is a
	// conservative heuristic, not a cryptographic guarantee.
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return v, nil
	}
	inner, ok := m[p.marker]
	if !ok {
		return v, nil
	}
	env, _ := inner.(map[string]any)
	if n, ok := versionOf(env[fieldVersion]); !ok || n != envelopeVersion {
		return nil, Issues{{
			Path:    keyPath(key),
			Code:    CodeUnsupportedVersion,
			Message: fmt.Sprintf("unsupported envelope version %v", env[fieldVersion]),
			Params:  map[string]any{"key": key},
		}}
	}
	id, _ := env[fieldType].(string)
	val := env[fieldValue]
	pl, ok := p.reg.lookup(id)
	if !ok {
		// Degraded passthrough: the consumer may legitimately not carry the
		// plugin that produced this envelope.
		return val, nil
	}
	out, err := pl.decode(ctx, key, val)
	if err != nil {
		return nil, Issues{{
			Path:    keyPath(key),
			Code:    CodePluginDecode,
			Message: fmt.Sprintf("plugin %q failed to decode", id),
			Cause:   err,
			Params:  map[string]any{"type": id, "key": key},
		}}
	}
	return out, nil
}

// versionOf normalizes the envelope version across the numeric
// representations the format layers produce (float64 from JSON, int from
// YAML).
func versionOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// keyPath renders the node key as a pointer fragment for error context. Only
// the immediate key is known at the interception point.
func keyPath(key string) string {
	if key == "" {
		return "/"
	}
	return "/" + key
}
