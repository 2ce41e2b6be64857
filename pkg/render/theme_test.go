package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func TestResolveTheme_ConvertsTokensToCSSVars(t *testing.T) {
	selector := NewStaticSelector(&theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":       "#123456",
			"font.family": "Inter",
		},
	})

	cfg, err := ResolveTheme(selector, "acme", "dark", nil)
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection: %s/%s", cfg.Theme, cfg.Variant)
	}
	want := map[string]string{
		"--regform-brand":       "#123456",
		"--regform-font-family": "Inter",
	}
	if diff := cmp.Diff(want, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("regform.css"); got != "/assets/regform.css" {
		t.Fatalf("asset url: got %q", got)
	}
}

func TestResolveTheme_Errors(t *testing.T) {
	if _, err := ResolveTheme(nil, "acme", "", nil); !errors.Is(err, ErrThemeSelector) {
		t.Fatalf("expected ErrThemeSelector, got %v", err)
	}
	if _, err := ResolveTheme(NewStaticSelector(), "missing", "", nil); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestStaticSelector_EmptyNamePicksFirst(t *testing.T) {
	selector := NewStaticSelector(&theme.Manifest{Name: "zeta"}, &theme.Manifest{Name: "alpha"}, nil)

	selection, err := selector.Select("", "light")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "alpha" {
		t.Fatalf("expected alpha, got %s", selection.Theme)
	}
}

func TestThemeAssets(t *testing.T) {
	resolve := ThemeAssets("/static")
	if got := resolve("/regform.css"); got != "/static/regform.css" {
		t.Fatalf("got %q", got)
	}
	if got := resolve(" "); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}
