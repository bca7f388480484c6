package serializer

// Package serializer extends plain JSON (and YAML) with round-trip support
// for values the format cannot represent natively: sets, arbitrary-keyed
// maps, timestamps, big integers, regular expressions, or anything a caller
// registers a plugin for.
//
// - A Plugin binds one type identifier to a pure encode/decode pair
// - Plugin-owned nodes travel on the wire inside a versioned envelope object
//   keyed by a configurable marker
// - A stable error model via Issues (code, path, chained cause)
// - Each Serializer owns its registry and configuration; instances never
//   share state
//
// Design policy:
// - Keep only public APIs in the root package; the tree-walking format layer
//   lives under internal/format.
// - Bundled plugins live under plugins/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := serializer.New(serializer.WithPlugins(plugins.Defaults()...))
//	text, err := s.Serialize(ctx, value)
//	back, err := s.Deserialize(ctx, text)
