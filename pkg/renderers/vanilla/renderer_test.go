package vanilla_test

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderString(t *testing.T, options render.RenderOptions) string {
	t.Helper()
	out, err := newRenderer(t).Render(testsupport.Context(), layout.Default(), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRender_EmptyForm(t *testing.T) {
	html := renderString(t, render.RenderOptions{Action: "/register"})

	assertContains(t, html,
		`<form class="regform-form" method="post" action="/register" novalidate>`,
		`<label for="rf-firstName">First Name:</label>`,
		`placeholder="Enter Your First Name"`,
		`<input type="email" id="rf-email" name="email" value=""`,
		`<input type="tel" id="rf-phoneNumber"`,
		`<input type="password" id="rf-password" name="password" value=""`,
		`<select id="rf-gender" name="gender">`,
		`<option value="" selected>Select...</option>`,
		`<input type="checkbox" id="rf-interests-coding" name="interests" value="coding">`,
		`<input type="date" id="rf-birthDate"`,
		`<button type="submit">Submit</button>`,
	)
	if strings.Contains(html, `role="alert"`) {
		t.Fatalf("empty form must not render errors")
	}

	order := []string{"rf-firstName", "rf-lastName", "rf-email", "rf-phoneNumber", "rf-password",
		"rf-confirmPassword", "rf-age", "rf-gender", "rf-interests", "rf-birthDate"}
	last := -1
	for _, id := range order {
		idx := strings.Index(html, `id="`+id)
		if idx <= last {
			t.Fatalf("field %s rendered out of order", id)
		}
		last = idx
	}
}

func TestRender_PrefilledWithErrors(t *testing.T) {
	values := testsupport.ValidSnapshot()
	values.Interests = []model.Interest{model.InterestCoding, model.InterestReading}
	values.Age = "17"

	html := renderString(t, render.RenderOptions{
		Values: values,
		Errors: model.ErrorMap{model.FieldAge: validation.MsgAgeMin},
	})

	assertContains(t, html,
		`name="firstName" value="Jane"`,
		`<option value="female" selected>Female</option>`,
		`value="coding" checked>`,
		`value="reading" checked>`,
		`value="sports">`,
		`regform-field--age regform-field--invalid`,
		`aria-describedby="rf-age-error"`,
		`<div class="regform-error" id="rf-age-error" role="alert">you must be at least 18 year old</div>`,
	)
	if strings.Contains(html, "Abcdef1!") {
		t.Fatalf("password values must never be echoed")
	}
}

func TestRender_EscapesValues(t *testing.T) {
	values := testsupport.ValidSnapshot()
	values.FirstName = `"><script>alert(1)</script>`

	html := renderString(t, render.RenderOptions{Values: values})
	if strings.Contains(html, "<script>") {
		t.Fatalf("values must be escaped:\n%s", html)
	}
}

func TestRender_HiddenFieldsAndTheme(t *testing.T) {
	html := renderString(t, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.FormID("abc-123")),
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--regform-danger": "#ff0000"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key
			},
		},
	})

	assertContains(t, html,
		`data-theme="acme" data-theme-variant="dark"`,
		`<link rel="stylesheet" href="/themes/acme/regform.css">`,
		`--regform-danger: #ff0000;`,
		`<input type="hidden" name="_form_id" value="abc-123">`,
	)
}

func TestRenderConfirmation_OmitsSecrets(t *testing.T) {
	out, err := newRenderer(t).RenderConfirmation(context.Background(), layout.Default(), testsupport.ValidSnapshot(), "ref-1", nil)
	if err != nil {
		t.Fatalf("render confirmation: %v", err)
	}
	html := string(out)
	assertContains(t, html,
		`Reference <code>ref-1</code>`,
		`<dd>Jane</dd>`,
		`<dd>Female</dd>`,
		`<dd>Reading</dd>`,
	)
	if strings.Contains(html, "Abcdef1!") || strings.Contains(html, "Password:") {
		t.Fatalf("confirmation must not show password fields:\n%s", html)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, layout.Default(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
