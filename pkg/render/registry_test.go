package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, layout.Layout, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func newRegistry(t *testing.T) *render.Registry {
	t.Helper()
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "tui", contentType: "application/json"})
	return registry
}

func TestRegistry_Register(t *testing.T) {
	registry := newRegistry(t)

	if err := registry.Register(stubRenderer{name: "tui"}); !errors.Is(err, render.ErrRendererExists) {
		t.Fatalf("expected ErrRendererExists, got %v", err)
	}
	if err := registry.Register(stubRenderer{name: " "}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"vanilla", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("preact") {
		t.Fatalf("Has returned unexpected results")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := newRegistry(t)

	got, err := registry.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "tui" {
		t.Fatalf("got renderer %q", got.Name())
	}

	def, err := registry.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if def.Name() != "vanilla" {
		t.Fatalf("expected first registered renderer as default, got %q", def.Name())
	}

	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if _, err := render.NewRegistry().Get(""); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound on empty registry, got %v", err)
	}
}

func TestRegistry_ForContentType(t *testing.T) {
	registry := newRegistry(t)

	tests := []struct {
		contentType string
		want        string
	}{
		{contentType: "text/html", want: "vanilla"},
		{contentType: "TEXT/HTML; charset=UTF-8", want: "vanilla"},
		{contentType: "application/json", want: "tui"},
	}
	for _, tt := range tests {
		got, err := registry.ForContentType(tt.contentType)
		if err != nil {
			t.Fatalf("%s: %v", tt.contentType, err)
		}
		if got.Name() != tt.want {
			t.Fatalf("%s: got %q want %q", tt.contentType, got.Name(), tt.want)
		}
	}

	if _, err := registry.ForContentType("text/plain"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
