// Package livedemo is an ambient HTTP/WebSocket/GraphQL server that
// exercises a reactive inventory cache from the outside. The core
// collections in package changeset/tracking/reactive/subject are
// explicitly single-threaded, non-serialising, and persistence-free; this
// package is where the rest of the dependency stack (chi, gorilla
// websocket, graphql-go, klauspost/compress, golang.org/x/crypto) gets a
// legitimate home, the same way laura-db wraps its own core engine with
// pkg/server + pkg/graphql.
package livedemo

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/graphql"
	"github.com/klauspost/compress/gzhttp"

	"github.com/mnohosten/changetrack/pkg/subject"
)

// Server is the demo HTTP server. Package subject's collections assume a
// single-threaded caller, so every access to items (mutation, snapshot, or
// Subscribe) goes through mu — net/http otherwise hands each request its own
// goroutine.
type Server struct {
	config    *Config
	mu        sync.Mutex
	items     *subject.Cache[string, Item]
	router    *chi.Mux
	httpSrv   *http.Server
	wsHub     *changeStreamHub
	gqlSchema graphql.Schema
}

// New builds a Server with an empty inventory cache.
func New(config *Config) (*Server, error) {
	items, err := subject.NewCache[string, Item](0, itemKey, itemEquals)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory cache: %w", err)
	}
	srv := &Server{
		config: config,
		items:  items,
		router: chi.NewRouter(),
	}
	srv.wsHub = newChangeStreamHub(srv.items, &srv.mu)

	srv.setupMiddleware()
	srv.setupRoutes()
	if config.EnableGraphQL {
		if err := srv.setupGraphQLRoutes(); err != nil {
			return nil, fmt.Errorf("failed to setup GraphQL routes: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	srv.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return srv, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Logger)
	if s.config.EnableCORS {
		s.router.Use(s.corsMiddleware)
	}
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
			next.ServeHTTP(w, r)
		})
	})
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Post("/items", s.handleCreateItem)
	s.router.Delete("/items/{key}", s.handleDeleteItem)

	// gzhttp wraps the snapshot handler the way pkg/compression wraps a
	// writer: the handler itself stays compression-agnostic, the wrapper
	// negotiates Accept-Encoding and streams gzip only when asked for it.
	s.router.Method(http.MethodGet, "/items", gzhttp.GzipHandler(http.HandlerFunc(s.handleListItems)))

	s.router.Get("/ws", s.wsHub.handleUpgrade)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.config.AllowedOrigins) > 0 {
			origin = s.config.AllowedOrigins[0]
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start begins serving and blocks until the process receives SIGINT/SIGTERM
// or the listener fails, at which point it shuts down gracefully.
func (s *Server) Start() error {
	fmt.Printf("inventory demo listening on http://%s\n", s.httpSrv.Addr)
	fmt.Printf("websocket change stream: ws://%s/ws\n", s.httpSrv.Addr)
	if s.config.EnableGraphQL {
		fmt.Printf("graphiql playground: http://%s/graphiql\n", s.httpSrv.Addr)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		fmt.Printf("received signal: %v, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	}
}

// Shutdown gracefully stops the HTTP server and closes every live WebSocket
// connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.wsHub.closeAll()
	return s.httpSrv.Shutdown(ctx)
}
