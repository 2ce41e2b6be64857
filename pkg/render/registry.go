package render

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"
)

var (
	// ErrRendererNotFound is returned for unknown names and content types.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrRendererExists is returned when a name is registered twice.
	ErrRendererExists = errors.New("render: renderer already registered")
)

// Registry holds the renderers a host can present the form with. The first
// registered renderer is the default.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrRendererExists, name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the named renderer. An empty name selects the default.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		if len(r.order) == 0 {
			return nil, fmt.Errorf("%w: registry is empty", ErrRendererNotFound)
		}
		name = r.order[0]
	}
	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// ForContentType returns the first renderer, in registration order, whose
// ContentType has the media type of contentType. Parameters such as charset
// are ignored.
func (r *Registry) ForContentType(contentType string) (Renderer, error) {
	want := mediaType(contentType)
	if want == "" {
		return nil, fmt.Errorf("%w: empty content type", ErrRendererNotFound)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		renderer := r.byName[name]
		if mediaType(renderer.ContentType()) == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: content type %q", ErrRendererNotFound, want)
}

// List returns the renderer names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

func mediaType(contentType string) string {
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return parsed
}
