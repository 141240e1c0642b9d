// Package server serves the browser viewer.
//
// The page at / draws frames on a canvas. Frames are computed here: the page
// opens a websocket at /ws, sends pointer and precision events as JSON, and
// receives every finished frame as one binary message of raw RGBA bytes that
// it copies into ImageData. Each websocket connection is a session with its
// own view controller; sessions share only the renderer, which is read-only.
//
// /frame.png renders a single frame for a viewport given in the query string.
// /local.html runs the viewer as WebAssembly in the page when a wasm
// directory is configured.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marben/canvas_mandel/render"
	"github.com/marben/canvas_mandel/view"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Width and Height are the raster size of every frame.
	Width, Height int

	// Render and Controller are passed to the renderer and to the
	// controller of every session.
	Render     []render.Option
	Controller []view.Option

	// OriginPatterns lists extra hosts allowed to open websockets.
	// Same-origin requests are always accepted.
	OriginPatterns []string

	// WasmDir, when set, is served at /wasm/. It holds webclient.wasm and
	// wasm_exec.js for the browser-local viewer at /local.html.
	WasmDir string
}

// Server is the HTTP front end of the viewer.
type Server struct {
	opts     Options
	logger   *log.Logger
	renderer *render.Renderer
	router   chi.Router

	sessions atomic.Int64
}

// New creates a server. It does not start listening.
func New(opts Options, logger *log.Logger) *Server {
	s := &Server{
		opts:   opts,
		logger: logger,
	}
	renderOpts := append([]render.Option{render.WithLogger(logger)}, opts.Render...)
	s.renderer = render.New(opts.Width, opts.Height, renderOpts...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded directory is fixed at build time
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebsocket)
	r.Get("/frame.png", s.handleFrame)
	if s.opts.WasmDir != "" {
		r.Handle("/wasm/*", http.StripPrefix("/wasm/", http.FileServer(http.Dir(s.opts.WasmDir))))
	}
	r.Handle("/*", http.FileServerFS(static))
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is canceled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "url", "http://"+l.Addr().String())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "sessions", s.sessions.Load())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`+"\n", s.sessions.Load())
}

// requestLogger logs one line per request at debug level.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			l.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start).Round(time.Microsecond))
		})
	}
}
