package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jobdigest/vacancy-api/internal/ingest"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

type Server struct {
	srv *http.Server
}

// New creates a server. The baseCtx is used as the base context for all
// incoming requests (via BaseContext); cancelling it makes in-flight
// upstream fetches stop promptly during graceful shutdown.
func New(baseCtx context.Context, port string, vacancySvc *vacancy.Service, orchestrator *ingest.Orchestrator, registry *source.Registry) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: newMux(vacancySvc, orchestrator, registry),
			BaseContext: func(_ net.Listener) context.Context {
				return baseCtx
			},
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}
