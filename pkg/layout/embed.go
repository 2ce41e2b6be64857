package layout

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*
var embeddedLayouts embed.FS

// DefaultPath is the name of the bundled layout inside EmbeddedFS.
const DefaultPath = "default.yaml"

var (
	defaultOnce   sync.Once
	defaultLayout Layout
)

// EmbeddedFS returns the bundled layout documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLayouts, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the bundled layout. The document is parsed once; callers
// receive their own copy.
func Default() Layout {
	defaultOnce.Do(func() {
		l, err := LoadFS(EmbeddedFS(), DefaultPath)
		if err != nil {
			panic(err)
		}
		defaultLayout = l
	})
	return defaultLayout.Clone()
}
