package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheet shipped with the HTML renderer.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(regform.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedLayouts exposes the bundled layout documents.
func EmbeddedLayouts() fs.FS {
	return layout.EmbeddedFS()
}
