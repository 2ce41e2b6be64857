// Package regform exposes the registration form component from the module
// root: the form store, the bundled layout and the HTML and terminal
// renderers.
package regform

import (
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Snapshot aliases model.Snapshot.
type Snapshot = model.Snapshot

// ErrorMap aliases model.ErrorMap.
type ErrorMap = model.ErrorMap

// Layout aliases layout.Layout.
type Layout = layout.Layout

// RenderOptions describes per-request overrides that renderers use to prefill
// values or surface validation errors.
type RenderOptions = render.RenderOptions

// AcceptFunc receives accepted snapshots.
type AcceptFunc = form.AcceptFunc

// NewForm returns a form store validated by the default rule set unless
// options say otherwise.
func NewForm(options ...form.Option) *form.Form {
	return form.New(options...)
}

// Validate runs the default rule set against snapshot.
func Validate(snapshot Snapshot) validation.Result {
	return validation.Validate(snapshot)
}

// DefaultLayout returns the bundled layout.
func DefaultLayout() Layout {
	return layout.Default()
}

// LoadLayout reads a JSON or YAML layout file. An empty path returns the
// bundled layout.
func LoadLayout(path string) (Layout, error) {
	if strings.TrimSpace(path) == "" {
		return layout.Default(), nil
	}
	return layout.LoadFile(path)
}

// NewRegistry returns a registry holding the HTML renderer and, when tuiOpts
// are given or the caller asks for it, the terminal renderer.
func NewRegistry(withTUI bool, tuiOpts ...tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("regform: vanilla renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	if withTUI || len(tuiOpts) > 0 {
		term, err := tui.New(tuiOpts...)
		if err != nil {
			return nil, fmt.Errorf("regform: tui renderer: %w", err)
		}
		if err := registry.Register(term); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Generate renders l with the named renderer from registry.
func Generate(ctx context.Context, registry *render.Registry, rendererName string, l Layout, opts RenderOptions) ([]byte, error) {
	if registry == nil {
		return nil, fmt.Errorf("regform: registry is nil")
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, l, opts)
}

// GenerateHTML renders l as an HTML form using the bundled templates.
func GenerateHTML(ctx context.Context, l Layout, opts RenderOptions) ([]byte, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("regform: vanilla renderer: %w", err)
	}
	return html.Render(ctx, l, opts)
}

// ResolveTheme resolves a go-theme selection into renderer configuration with
// assets served from the /assets/ route.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	return render.ResolveTheme(selector, name, variant, render.ThemeAssets(""))
}
