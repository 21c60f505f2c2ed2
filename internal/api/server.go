package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cradlewatch/cradlewatch/internal/auth"
	"github.com/cradlewatch/cradlewatch/internal/config"
)

// Server represents the API server
type Server struct {
	config    *config.Config
	handlers  *Handlers
	server    *http.Server
	router    *chi.Mux
	apiRouter chi.Router
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, h *Handlers, tokens *auth.TokenManager) *Server {
	router, apiRouter := SetupRoutes(h, tokens)

	return &Server{
		config:    cfg,
		handlers:  h,
		router:    router,
		apiRouter: apiRouter,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// stops or fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.GetHost(), s.config.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the root router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
