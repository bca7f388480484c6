package serializer_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	serializer "github.com/paullouismas/better-json-serializer"
)

type widget struct {
	name string
}

func widgetPlugin(t *testing.T, wireName string) serializer.Plugin {
	t.Helper()
	p, err := serializer.NewPlugin[widget]("widget",
		func(ctx context.Context, key string, v widget) (any, error) {
			return map[string]any{"name": wireName + v.name}, nil
		},
		func(ctx context.Context, key string, raw any) (widget, error) {
			m := raw.(map[string]any)
			return widget{name: strings.TrimPrefix(m["name"].(string), wireName)}, nil
		},
	)
	if err != nil {
		t.Fatalf("NewPlugin: %v", err)
	}
	return p
}

func TestEnvelope_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))

	text, err := s.Serialize(ctx, map[string]any{"w": widget{name: "gear"}})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	want := `{"w":{"@ext":{"type":"widget","value":{"name":"gear"},"version":1}}}`
	if text != want {
		t.Fatalf("text=%s want=%s", text, want)
	}

	back, err := s.Deserialize(ctx, text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got := back.(map[string]any)["w"].(widget); got.name != "gear" {
		t.Fatalf("widget=%#v", got)
	}
}

func TestEnvelope_DegradedDecodeWithoutPlugin(t *testing.T) {
	ctx := context.Background()
	producer := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))

	text, err := producer.Serialize(ctx, widget{name: "gear"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	// A fresh instance that never registered "widget" must surface the raw
	// inner value, not an error.
	consumer := newSerializer(t)
	back, err := consumer.Deserialize(ctx, text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !reflect.DeepEqual(back, map[string]any{"name": "gear"}) {
		t.Fatalf("degraded decode=%#v", back)
	}
}

func TestEnvelope_VersionGate(t *testing.T) {
	ctx := context.Background()
	s := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))

	text := `{"@ext":{"version":2,"type":"widget","value":{"name":"gear"}}}`
	_, err := s.Deserialize(ctx, text)
	if !serializer.HasCode(err, serializer.CodeUnsupportedVersion) {
		t.Fatalf("expected %s, got %v", serializer.CodeUnsupportedVersion, err)
	}
}

func TestEnvelope_CollisionGuard(t *testing.T) {
	ctx := context.Background()
	s := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))

	// The marker key with sibling keys is user data, not an envelope.
	text := `{"@ext":{"version":1,"type":"widget","value":{"name":"gear"}},"sibling":true}`
	back, err := s.Deserialize(ctx, text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	want := map[string]any{
		"@ext": map[string]any{
			"version": float64(1),
			"type":    "widget",
			"value":   map[string]any{"name": "gear"},
		},
		"sibling": true,
	}
	if !reflect.DeepEqual(back, want) {
		t.Fatalf("collision guard violated: %#v", back)
	}
}

func TestEnvelope_CustomMarkerKey(t *testing.T) {
	ctx := context.Background()
	s := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))
	if err := s.Config().Set(serializer.ConfigMarkerKey, "$$wrapped"); err != nil {
		t.Fatalf("set marker: %v", err)
	}

	text, err := s.Serialize(ctx, widget{name: "gear"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(text, `"$$wrapped"`) {
		t.Fatalf("custom marker not used: %s", text)
	}
	back, err := s.Deserialize(ctx, text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if back.(widget).name != "gear" {
		t.Fatalf("round trip with custom marker failed: %#v", back)
	}
}

func TestEnvelope_PluginEncodeErrorIsClassified(t *testing.T) {
	ctx := context.Background()
	p, err := serializer.NewPlugin[widget]("widget",
		func(ctx context.Context, key string, v widget) (any, error) {
			return nil, context.DeadlineExceeded
		},
		func(ctx context.Context, key string, raw any) (widget, error) {
			return widget{}, nil
		},
	)
	if err != nil {
		t.Fatalf("NewPlugin: %v", err)
	}
	s := newSerializer(t, serializer.WithPlugins(p))

	_, err = s.Serialize(ctx, widget{name: "gear"})
	if !serializer.HasCode(err, serializer.CodePluginEncode) {
		t.Fatalf("expected %s, got %v", serializer.CodePluginEncode, err)
	}
	iss, _ := serializer.AsIssues(err)
	if iss[0].Params["type"] != "widget" {
		t.Fatalf("offending type missing from error: %#v", iss[0])
	}
}

func TestEnvelope_PluginDecodeErrorIsClassified(t *testing.T) {
	ctx := context.Background()
	p, err := serializer.NewPlugin[widget]("widget",
		func(ctx context.Context, key string, v widget) (any, error) {
			return v.name, nil
		},
		func(ctx context.Context, key string, raw any) (widget, error) {
			return widget{}, context.DeadlineExceeded
		},
	)
	if err != nil {
		t.Fatalf("NewPlugin: %v", err)
	}
	s := newSerializer(t, serializer.WithPlugins(p))

	text, err := s.Serialize(ctx, widget{name: "gear"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	_, err = s.Deserialize(ctx, text)
	if !serializer.HasCode(err, serializer.CodePluginDecode) {
		t.Fatalf("expected %s, got %v", serializer.CodePluginDecode, err)
	}
}

func TestEnvelope_NestedExtensionValues(t *testing.T) {
	ctx := context.Background()
	s := newSerializer(t, serializer.WithPlugins(widgetPlugin(t, "")))

	// A widget inside a plain container inside another plugin payload would
	// be the richer case; plugins_test covers that. Here: widget nested in
	// plain maps and arrays.
	v := map[string]any{"list": []any{widget{name: "a"}, widget{name: "b"}}}
	text, err := s.Serialize(ctx, v)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	back, err := s.Deserialize(ctx, text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	list := back.(map[string]any)["list"].([]any)
	if list[0].(widget).name != "a" || list[1].(widget).name != "b" {
		t.Fatalf("nested widgets lost: %#v", list)
	}
}
