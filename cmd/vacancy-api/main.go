package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobdigest/vacancy-api/internal/config"
	"github.com/jobdigest/vacancy-api/internal/ingest"
	"github.com/jobdigest/vacancy-api/internal/platform/sqlite"
	vacancyrepo "github.com/jobdigest/vacancy-api/internal/repository/vacancy"
	"github.com/jobdigest/vacancy-api/internal/server"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/source/headhunter"
	"github.com/jobdigest/vacancy-api/internal/source/superjob"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

func main() {
	cfg := config.Load()

	// Root context: cancelled on SIGINT/SIGTERM so in-flight upstream
	// fetches stop promptly during graceful shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Open database
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	repo := vacancyrepo.NewRepository(db.DB)

	// Source registry
	registry := source.NewRegistry()
	registry.Register(headhunter.New(headhunter.WithWorkers(cfg.Workers)))
	registry.Register(superjob.New(cfg.SuperJobKey))

	// Ingestion pipeline
	orchestrator := ingest.NewOrchestrator(registry, repo)
	coordinator := ingest.NewCoordinator(orchestrator, registry)

	// Vacancy service: pagination refills the store through the coordinator
	// when a caller reaches the cached tail.
	vacancySvc := vacancy.NewService(repo, cfg.PageSize)
	vacancySvc.SetReplenish(func(ctx context.Context, query string, upstreamPage, perPage int) bool {
		outcomes := coordinator.RunAll(ctx, source.Params{
			Query:   query,
			Page:    upstreamPage,
			PerPage: perPage,
		})
		return ingest.AnyOK(outcomes)
	})

	// HTTP server — rootCtx is used as BaseContext so every request context
	// inherits from it and is cancelled on shutdown.
	srv := server.New(rootCtx, cfg.Port, vacancySvc, orchestrator, registry)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server started", "port", cfg.Port)
	<-done

	rootCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
