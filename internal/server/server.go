// Package server runs the live brand preview: an HTTP server with a
// websocket hub that pushes regenerated stylesheets to open pages.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/config"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/importer"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/stylesink"
	"github.com/conneroisu/branddna/internal/validation"
)

// state is the brand being previewed together with its derived output.
// It is replaced wholesale and never mutated.
type state struct {
	brand      brand.BrandDNA
	css        string
	previewCSS string
	result     validation.Result
	updatedAt  time.Time
}

// Server serves the preview page and pushes brand updates.
type Server struct {
	config     *config.Config
	logger     logging.Logger
	errors     *errors.ErrorHandler
	hub        *Hub
	sinks      *stylesink.Multi
	importer   *importer.Importer
	now        func() time.Time
	mu         sync.RWMutex
	current    state
	httpServer *http.Server
	serverMu   sync.Mutex
	startedAt  time.Time
	shutdown   sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l.WithComponent("server")
		}
	}
}

// WithImporter sets the importer used to reload and validate documents.
func WithImporter(i *importer.Importer) Option {
	return func(s *Server) {
		if i != nil {
			s.importer = i
		}
	}
}

// WithSink adds a sink that receives every stylesheet update next to the
// websocket hub.
func WithSink(sink stylesink.StyleSink) Option {
	return func(s *Server) {
		if sink != nil {
			s.sinks.Add(sink)
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a server previewing b.
func New(cfg *config.Config, b brand.BrandDNA, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "server config is required")
	}

	s := &Server{
		config: cfg,
		logger: logging.NewNop(),
		sinks:  stylesink.NewMulti(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errors = errors.NewErrorHandler(s.logger, nil)
	s.hub = NewHub(s.logger)
	s.hub.now = s.now
	s.sinks.Add(s.hub)
	if s.importer == nil {
		s.importer = importer.New(
			importer.WithLogger(s.logger),
			importer.WithStrict(cfg.Validation.Strict),
			importer.WithMaxBytes(cfg.Import.MaxBytes),
			importer.WithClock(s.now),
		)
	}

	s.current = s.derive(b)
	s.startedAt = s.now()

	return s, nil
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) derive(b brand.BrandDNA) state {
	opts := s.config.CSSOptions()
	preview := opts
	preview.Selector = ":root"

	return state{
		brand:      b.Clone(),
		css:        serializer.ToCSS(b, opts),
		previewCSS: serializer.ToCSS(b, preview),
		result:     validation.Validate(&b),
		updatedAt:  s.now(),
	}
}

// Brand returns a copy of the brand being previewed.
func (s *Server) Brand() brand.BrandDNA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.brand.Clone()
}

func (s *Server) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// SetBrand replaces the previewed brand and pushes its stylesheet to
// every sink.
func (s *Server) SetBrand(ctx context.Context, b brand.BrandDNA) error {
	next := s.derive(b)

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.logger.Info(ctx, "Brand updated",
		"brand", next.brand.Metadata.Name,
		"errors", len(next.result.Blocking(s.config.Validation.Strict)),
		"warnings", len(next.result.Warnings()))

	if err := s.sinks.Apply(next.previewCSS); err != nil {
		return fmt.Errorf("push stylesheet: %w", err)
	}

	return nil
}

// ReloadFile imports path and previews the result. A rejected document
// keeps the current brand and sends the errors to connected pages.
func (s *Server) ReloadFile(ctx context.Context, path string) error {
	res := s.importer.ImportFile(path)
	if !res.Success {
		s.logger.Warn(ctx, res.Err(), "Brand file rejected", "path", path, "errors", len(res.Errors))
		if err := s.hub.Send(Message{Type: MessageError, Errors: res.Errors}); err != nil {
			s.logger.Debug(ctx, "Error broadcast skipped", "error", err.Error())
		}

		return res.Err()
	}

	return s.SetBrand(ctx, *res.Brand)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/brand.css", s.handleCSS)
	mux.HandleFunc("/api/brand", s.handleBrand)
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	return s.addMiddleware(mux)
}

// Start serves on the configured address until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return errors.WrapNetwork(err, errors.ErrCodeListenFailed, "listen on "+s.config.Addr())
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	s.serverMu.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.serverMu.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, err, "Shutdown failed")
		}
	}()

	s.logger.Info(ctx, "Preview server listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown stops the HTTP server. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdown.Do(func() {
		s.serverMu.Lock()
		srv := s.httpServer
		s.serverMu.Unlock()

		if srv != nil {
			err = srv.Shutdown(ctx)
		}
	})

	return err
}
