package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server wraps the gin engine in an http.Server so the process can drain
// in-flight requests on shutdown instead of dropping them.
type Server struct {
	Engine *gin.Engine
	srv    *http.Server
}

func NewServer(cfg RouterConfig) *Server {
	engine := NewRouter(cfg)
	return &Server{
		Engine: engine,
		srv:    &http.Server{Handler: engine},
	}
}

// Run blocks serving requests until Shutdown is called or the listener
// fails. A shutdown-triggered exit is not an error.
func (s *Server) Run(address string) error {
	s.srv.Addr = address
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight
// requests, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
