// Package vanilla renders the registration form as server-side HTML using the
// pongo2 template bundle embedded in this package.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const (
	formTemplate         = "templates/form.tmpl"
	confirmationTemplate = "templates/confirmation.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tmpl and templates/confirmation.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. Values of secret fields are never written
// into the output.
func (r *Renderer) Render(ctx context.Context, l layout.Layout, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := map[string]any{
		"classes": chromeClasses(),
		"form": map[string]any{
			"title":        l.Title,
			"subtitle":     l.Subtitle,
			"action":       options.Action,
			"method":       strings.ToLower(options.MethodOrDefault()),
			"submit_label": l.Submit.Label,
			"submit_icon":  l.Submit.Icon,
		},
		"fields":        fieldViews(l, options.Values, options.Errors),
		"hidden_fields": hiddenViews(options.Hidden),
		"theme":         themeView(options.Theme),
	}

	result, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderConfirmation produces the page shown after an accepted submission.
// Secret fields are omitted and interests are listed by their option labels.
func (r *Renderer) RenderConfirmation(ctx context.Context, l layout.Layout, snapshot model.Snapshot, reference string, themeCfg *theme.RendererConfig) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := map[string]any{
		"classes":   chromeClasses(),
		"form":      map[string]any{"title": l.Title},
		"reference": reference,
		"entries":   summaryEntries(l, snapshot),
		"theme":     themeView(themeCfg),
	}

	result, err := r.templates.RenderTemplate(confirmationTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render confirmation: %w", err)
	}
	return []byte(result), nil
}

func fieldViews(l layout.Layout, values model.Snapshot, errs model.ErrorMap) []map[string]any {
	out := make([]map[string]any, 0, len(l.Fields))
	for _, entry := range l.Fields {
		field := entry.Field
		view := map[string]any{
			"name":        string(field),
			"id":          controlID(field),
			"label":       entry.Label,
			"placeholder": entry.Placeholder,
			"help":        entry.Help,
			"input":       string(entry.Input),
			"css_class":   entry.CSSClass,
			"error":       errs.Get(field),
		}
		if field.Secret() {
			view["autocomplete"] = "new-password"
		}

		value := ""
		if field.Scalar() && !field.Secret() {
			value, _ = values.Value(field)
		}
		view["value"] = value

		if entry.Input.Choice() {
			options := make([]map[string]any, 0, len(entry.Options))
			for _, opt := range entry.Options {
				selected := false
				if field == model.FieldInterests {
					selected = values.HasInterest(model.Interest(opt.Value))
				} else {
					selected = value == opt.Value
				}
				options = append(options, map[string]any{
					"value":    opt.Value,
					"label":    opt.Label,
					"selected": selected,
				})
			}
			view["options"] = options
		}
		out = append(out, view)
	}
	return out
}

func summaryEntries(l layout.Layout, snapshot model.Snapshot) []map[string]any {
	out := make([]map[string]any, 0, len(l.Fields))
	for _, entry := range l.Fields {
		field := entry.Field
		if field.Secret() {
			continue
		}
		var value string
		switch field {
		case model.FieldInterests:
			labels := make([]string, 0, len(snapshot.Interests))
			for _, tag := range snapshot.Interests {
				labels = append(labels, entry.OptionLabel(string(tag)))
			}
			value = strings.Join(labels, ", ")
		case model.FieldGender:
			value = entry.OptionLabel(string(snapshot.Gender))
		default:
			value, _ = snapshot.Value(field)
		}
		out = append(out, map[string]any{
			"field": string(field),
			"label": entry.Label,
			"value": value,
		})
	}
	return out
}

func hiddenViews(fields map[string]string) []map[string]any {
	sorted := render.SortedHiddenFields(fields)
	out := make([]map[string]any, 0, len(sorted))
	for _, hidden := range sorted {
		out = append(out, map[string]any{"name": hidden.Name, "value": hidden.Value})
	}
	return out
}

func themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	view := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
	}
	if len(cfg.CSSVars) > 0 {
		names := make([]string, 0, len(cfg.CSSVars))
		for name := range cfg.CSSVars {
			names = append(names, name)
		}
		sort.Strings(names)
		vars := make([]map[string]any, 0, len(names))
		for _, name := range names {
			vars = append(vars, map[string]any{"name": name, "value": cfg.CSSVars[name]})
		}
		view["css_vars"] = vars
	}
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL(StylesheetName); href != "" {
			view["stylesheet"] = href
		}
	}
	return view
}

func controlID(field model.Field) string {
	return "rf-" + string(field)
}
