package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/layout"
)

// Renderer turns a layout plus per-request values into a byte representation
// of the registration form (HTML, terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, l layout.Layout, options RenderOptions) ([]byte, error)
}
