package serializer

import "fmt"

// Configuration keys.
const (
	// ConfigOverwritePlugins (bool): when true, registering a plugin for an
	// already-registered type id replaces the previous plugin instead of
	// failing.
	ConfigOverwritePlugins = "overwritePlugins"
	// ConfigMarkerKey (string): the property name marking a wire envelope.
	// It must not collide with keys in legitimate user data; collisions are
	// a documented caveat, not defended against.
	ConfigMarkerKey = "markerKey"
	// ConfigIndent (int, >= 0): default output indentation width. Zero
	// renders compact output.
	ConfigIndent = "indent"
)

// DefaultMarkerKey is the marker used unless ConfigMarkerKey is overridden.
const DefaultMarkerKey = "@ext"

// Config is a Serializer's settings store. It performs no internal locking;
// see the concurrency note on Serializer.
type Config struct {
	overwrite bool
	marker    string
	indent    int
}

func newConfig() *Config {
	return &Config{marker: DefaultMarkerKey}
}

// Snapshot returns a copy of every setting. Mutating the returned map never
// affects the stored state.
func (c *Config) Snapshot() map[string]any {
	return map[string]any{
		ConfigOverwritePlugins: c.overwrite,
		ConfigMarkerKey:        c.marker,
		ConfigIndent:           c.indent,
	}
}

// Value returns a single setting.
func (c *Config) Value(key string) (any, error) {
	switch key {
	case ConfigOverwritePlugins:
		return c.overwrite, nil
	case ConfigMarkerKey:
		return c.marker, nil
	case ConfigIndent:
		return c.indent, nil
	default:
		return nil, unknownKey(key)
	}
}

// Set validates and applies a single setting. The value's dynamic type must
// match the setting's type exactly; no coercion is performed. Failure leaves
// every setting unchanged.
func (c *Config) Set(key string, value any) error {
	switch key {
	case ConfigOverwritePlugins:
		b, ok := value.(bool)
		if !ok {
			return invalidValue(key, "bool", value)
		}
		c.overwrite = b
	case ConfigMarkerKey:
		s, ok := value.(string)
		if !ok {
			return invalidValue(key, "string", value)
		}
		if s == "" {
			return Issues{{
				Code:    CodeInvalidConfigValue,
				Message: "marker key must be non-empty",
				Params:  map[string]any{"key": key},
			}}
		}
		c.marker = s
	case ConfigIndent:
		n, ok := value.(int)
		if !ok {
			return invalidValue(key, "int", value)
		}
		if n < 0 {
			return Issues{{
				Code:    CodeInvalidConfigValue,
				Message: fmt.Sprintf("indent must be non-negative, got %d", n),
				Params:  map[string]any{"key": key},
			}}
		}
		c.indent = n
	default:
		return unknownKey(key)
	}
	return nil
}

// SetAll applies each entry independently; a failing entry does not roll back
// entries already applied. All failures are collected into a single Issues.
func (c *Config) SetAll(values map[string]any) error {
	var iss Issues
	for k, v := range values {
		if err := c.Set(k, v); err != nil {
			if more, ok := AsIssues(err); ok {
				iss = AppendIssues(iss, more...)
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func unknownKey(key string) Issues {
	return Issues{{
		Code:    CodeUnknownConfigKey,
		Message: fmt.Sprintf("unknown config key %q", key),
		Params:  map[string]any{"key": key},
	}}
}

func invalidValue(key, want string, got any) Issues {
	return Issues{{
		Code:    CodeInvalidConfigValue,
		Message: fmt.Sprintf("config key %q expects %s, got %T", key, want, got),
		Params:  map[string]any{"key": key},
	}}
}
