// Package server hosts the registration form over HTTP: it renders the form,
// accepts url-encoded and JSON submissions and publishes the OpenAPI contract,
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/observability"
	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink. Defaults to a fresh registry.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Server) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithLayout overrides the bundled layout.
func WithLayout(l layout.Layout) Option {
	return func(s *Server) {
		s.layout = l
	}
}

// WithValidator overrides the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		s.validator = v
	}
}

// WithAcceptFunc registers the collaborator receiving accepted snapshots.
func WithAcceptFunc(fn form.AcceptFunc) Option {
	return func(s *Server) {
		s.accept = fn
	}
}

// WithTheme themes the rendered pages.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithIDGenerator overrides how form and submission identifiers are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Server wires the HTTP routes to the form component.
type Server struct {
	cfg       config.HTTPConfig
	contract  *contract.Contract
	html      *vanilla.Renderer
	layout    layout.Layout
	validator *validation.Validator
	accept    form.AcceptFunc
	theme     *theme.RendererConfig
	logger    *zap.Logger
	metrics   *observability.Metrics
	newID     func() string
}

// New constructs a Server. The contract and the HTML renderer are required.
func New(cfg config.HTTPConfig, c *contract.Contract, html *vanilla.Renderer, options ...Option) (*Server, error) {
	if c == nil {
		return nil, errors.New("server: contract is required")
	}
	if html == nil {
		return nil, errors.New("server: html renderer is required")
	}

	s := &Server{
		cfg:      cfg,
		contract: c,
		html:     html,
		layout:   layout.Default(),
		logger:   zap.NewNop(),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	if s.cfg.MaxBodyBytes <= 0 {
		s.cfg.MaxBodyBytes = 64 << 10
	}
	return s, nil
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if timeout := s.cfg.RequestTimeout(); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleForm)
	r.Post(contract.SubmitPath, s.handleRegister)
	r.Get("/openapi.json", s.handleContract)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace())
	defer cancel()

	s.logger.Info("shutting down", zap.Duration("grace", s.cfg.ShutdownGrace()))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		s.metrics.RecordRequest(route, r.Method, status, duration)
		s.logger.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
	})
}
