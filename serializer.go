package serializer

import (
	"context"

	"github.com/paullouismas/better-json-serializer/internal/format"
)

// Transform is a user hook applied once per node: before envelope encoding on
// the way out, after envelope decoding on the way in. The returned value
// replaces the node; the root is visited under the empty key.
type Transform func(key string, v any) (any, error)

// SerializeOpt bundles per-call serialization options. The zero value applies
// the configured defaults. When several are passed, the last one wins.
type SerializeOpt struct {
	Transform Transform
	// Indent overrides the configured default indentation when non-nil.
	Indent *int
}

// DeserializeOpt bundles per-call deserialization options.
type DeserializeOpt struct {
	Transform Transform
}

// Serializer owns one plugin registry and one configuration store. Instances
// are independent: plugins or settings applied to one are never visible to
// another. One call performs one complete synchronous tree traversal; there
// is no internal locking, so concurrent callers must coordinate writes
// (Register, Config().Set) themselves.
type Serializer struct {
	reg *registry
	cfg *Config
}

// Option configures a Serializer at construction time.
type Option func(*Serializer) error

// WithConfig applies initial settings, as if by Config().SetAll.
func WithConfig(values map[string]any) Option {
	return func(s *Serializer) error { return s.cfg.SetAll(values) }
}

// WithPlugins registers plugins at construction time.
func WithPlugins(plugins ...Plugin) Option {
	return func(s *Serializer) error { return s.Register(plugins...) }
}

// New builds a Serializer with an empty registry and default configuration.
func New(opts ...Option) (*Serializer, error) {
	s := &Serializer{reg: newRegistry(), cfg: newConfig()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Config exposes the instance's settings store.
func (s *Serializer) Config() *Config { return s.cfg }

// Register adds plugins in order. Registration stops at the first failure;
// plugins registered before the failure stay registered. With
// ConfigOverwritePlugins enabled, a later plugin silently replaces an earlier
// one carrying the same type id.
func (s *Serializer) Register(plugins ...Plugin) error {
	for _, p := range plugins {
		if err := s.reg.register(p, s.cfg.overwrite); err != nil {
			return err
		}
	}
	return nil
}

// Serialize renders v as JSON text, wrapping every plugin-owned node in a
// versioned envelope. Values no plugin claims serialize exactly as the
// underlying format layer would alone.
func (s *Serializer) Serialize(ctx context.Context, v any, opts ...SerializeOpt) (string, error) {
	var opt SerializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	indent, err := s.indentFor(opt)
	if err != nil {
		return "", err
	}
	data, err := format.MarshalJSON(v, s.pass().encodeVisitor(ctx, opt.Transform), indent)
	if err != nil {
		return "", wrapFormatErr(err, CodeSerialization)
	}
	return string(data), nil
}

// Deserialize parses JSON text, unwrapping every envelope through the owning
// plugin. An envelope whose type has no registered plugin degrades to its raw
// inner value instead of failing the parse.
func (s *Serializer) Deserialize(ctx context.Context, text string, opts ...DeserializeOpt) (any, error) {
	var opt DeserializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, err := format.UnmarshalJSON([]byte(text), s.pass().decodeVisitor(ctx, opt.Transform))
	if err != nil {
		return nil, wrapFormatErr(err, CodeDeserialization)
	}
	return v, nil
}

// pass snapshots the settings a single traversal depends on. The registry is
// read live; it must not be mutated while a pass is in flight.
func (s *Serializer) pass() codecPass {
	return codecPass{reg: s.reg, marker: s.cfg.marker}
}

func (s *Serializer) indentFor(opt SerializeOpt) (int, error) {
	if opt.Indent == nil {
		return s.cfg.indent, nil
	}
	if *opt.Indent < 0 {
		return 0, Issues{{
			Code:    CodeInvalidConfigValue,
			Message: "indent must be non-negative",
			Params:  map[string]any{"key": ConfigIndent},
		}}
	}
	return *opt.Indent, nil
}

// wrapFormatErr classifies a format-layer failure, keeping taxonomy errors
// raised by the visitors intact and chaining everything else as a cause.
func wrapFormatErr(err error, code string) error {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Code: code, Message: err.Error(), Cause: err}}
}
