package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
)

// RenderOptions describe per-request data renderers use to fill in the form.
type RenderOptions struct {
	// Action is the submit target. Empty means the current URL.
	Action string
	// Method defaults to POST.
	Method string
	// Values pre-populates controls. Secret fields are never echoed back.
	Values model.Snapshot
	// Errors holds the message shown under each failing field.
	Errors model.ErrorMap
	// Hidden fields are emitted as hidden inputs in name order.
	Hidden map[string]string
	// Theme supplies tokens, CSS variables and asset URLs. Nil renders the
	// unthemed form.
	Theme *theme.RendererConfig
}

// MethodOrDefault returns the submit method, defaulting to POST.
func (o RenderOptions) MethodOrDefault() string {
	if o.Method == "" {
		return "POST"
	}
	return o.Method
}
