package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeSelector is returned when no selector is configured.
var ErrThemeSelector = errors.New("render: theme selector is nil")

// ThemeAssets resolves theme asset keys to URLs. An empty prefix serves assets
// from the host's /assets/ route.
func ThemeAssets(prefix string) func(string) string {
	if prefix == "" {
		prefix = "/assets/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return func(key string) string {
		key = strings.TrimLeft(strings.TrimSpace(key), "/")
		if key == "" {
			return ""
		}
		return prefix + key
	}
}

// ResolveTheme asks selector for the named theme and variant and converts the
// selection into renderer configuration. Manifest tokens become CSS custom
// properties prefixed with --regform-.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, assets func(string) string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, ErrThemeSelector
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	return ThemeFromSelection(selection, assets), nil
}

// ThemeFromSelection builds renderer configuration from a resolved selection.
func ThemeFromSelection(selection *theme.Selection, assets func(string) string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		AssetURL: assets,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		cfg.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		cfg.CSSVars = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			cfg.Tokens[key] = value
			cfg.CSSVars[cssVarName(key)] = value
		}
	}
	if cfg.AssetURL == nil {
		cfg.AssetURL = ThemeAssets("")
	}
	return cfg
}

// StaticSelector serves a fixed set of manifests. Variants are passed through
// unchanged; an empty name selects the first manifest in name order.
type StaticSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector indexes manifests by name. Nil and unnamed manifests are
// skipped.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		names := make([]string, 0, len(s.manifests))
		for key := range s.manifests {
			names = append(names, key)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("render: no themes registered")
		}
		sort.Strings(names)
		name = names[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown theme %q", name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

func cssVarName(token string) string {
	token = strings.TrimLeft(strings.TrimSpace(token), "-")
	token = strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(token)
	return "--regform-" + strings.ToLower(token)
}
