package serializer

import (
	"context"

	"github.com/paullouismas/better-json-serializer/internal/format"
)

// SerializeYAML renders v as YAML through the same envelope codec as
// Serialize: plugin-owned nodes are wrapped identically, only the rendering
// layer differs. A non-nil Indent must be at least 1 (YAML cannot render
// flush-left nesting); the configured default applies when the indent is 0.
func (s *Serializer) SerializeYAML(ctx context.Context, v any, opts ...SerializeOpt) (string, error) {
	var opt SerializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	indent, err := s.indentFor(opt)
	if err != nil {
		return "", err
	}
	data, err := format.MarshalYAML(v, s.pass().encodeVisitor(ctx, opt.Transform), indent)
	if err != nil {
		return "", wrapFormatErr(err, CodeSerialization)
	}
	return string(data), nil
}

// DeserializeYAML parses YAML text with the same envelope semantics as
// Deserialize, including the version gate and degraded decode for unknown
// plugin types.
func (s *Serializer) DeserializeYAML(ctx context.Context, text string, opts ...DeserializeOpt) (any, error) {
	var opt DeserializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, err := format.UnmarshalYAML([]byte(text), s.pass().decodeVisitor(ctx, opt.Transform))
	if err != nil {
		return nil, wrapFormatErr(err, CodeDeserialization)
	}
	return v, nil
}
