package regform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestEmbeddedAssetsContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedAssets(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".regform-form") {
		t.Fatalf("expected stylesheet to style the form container")
	}
}

func TestEmbeddedTemplatesAndLayouts(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedLayouts(), layout.DefaultPath); err != nil {
		t.Fatalf("expected default layout: %v", err)
	}
}

func TestLoadLayout_EmptyPathReturnsDefault(t *testing.T) {
	l, err := LoadLayout(" ")
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if len(l.Fields) != len(model.Fields()) {
		t.Fatalf("expected %d fields, got %d", len(model.Fields()), len(l.Fields))
	}
}

func TestGenerateHTML_RendersErrors(t *testing.T) {
	snapshot := testsupport.ValidSnapshot()
	snapshot.Age = "12"
	result := Validate(snapshot)
	if result.Valid() {
		t.Fatalf("expected age to fail")
	}

	out, err := GenerateHTML(context.Background(), DefaultLayout(), RenderOptions{
		Action: "/register",
		Values: snapshot,
		Errors: result.Errors,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, result.Errors.Get(model.FieldAge)) {
		t.Fatalf("expected age error in output")
	}
	if strings.Contains(html, snapshot.Password) {
		t.Fatalf("password must not be echoed")
	}
}

func TestGenerate_UsesRegistry(t *testing.T) {
	registry, err := NewRegistry(false)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if registry.Has("tui") {
		t.Fatalf("tui renderer registered without being requested")
	}
	if _, err := Generate(context.Background(), registry, "tui", DefaultLayout(), RenderOptions{}); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	out, err := Generate(context.Background(), registry, "vanilla", DefaultLayout(), RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "<form") {
		t.Fatalf("expected form markup")
	}
}

func TestNewForm_SubmitAcceptsValidSnapshot(t *testing.T) {
	f := NewForm()
	for _, field := range model.Fields() {
		if !field.Scalar() {
			continue
		}
		value, _ := testsupport.ValidSnapshot().Value(field)
		if err := f.UpdateField(field, value); err != nil {
			t.Fatalf("update %s: %v", field, err)
		}
	}
	if err := f.ToggleInterest(model.InterestReading, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid submission, got %v", result.Errors)
	}
}

func TestResolveTheme(t *testing.T) {
	cfg, err := ResolveTheme(render.NewStaticSelector(&theme.Manifest{Name: "acme"}), "acme", "dark")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	if cfg.AssetURL(vanilla.StylesheetName) != "/assets/"+vanilla.StylesheetName {
		t.Fatalf("unexpected asset url")
	}
}
