package server

import (
	"net/http"

	"github.com/jobdigest/vacancy-api/internal/ingest"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

// NewHandler creates the full HTTP handler with routes and middleware.
// Exported for use in tests (e.g., httptest.NewServer).
func NewHandler(vacancySvc *vacancy.Service, orchestrator *ingest.Orchestrator, registry *source.Registry) http.Handler {
	return newMux(vacancySvc, orchestrator, registry)
}

func newMux(vacancySvc *vacancy.Service, orchestrator *ingest.Orchestrator, registry *source.Registry) http.Handler {
	h := &handler{
		vacancySvc:   vacancySvc,
		orchestrator: orchestrator,
		registry:     registry,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/v1/platforms", h.listPlatforms)
	mux.HandleFunc("GET /api/v1/vacancies", h.listVacancies)
	mux.HandleFunc("POST /api/v1/platforms/{platform}/ingest", h.ingestPlatform)

	// Apply middleware stack: recovery -> requestID -> logging
	var handler http.Handler = mux
	handler = logging(handler)
	handler = requestID(handler)
	handler = recovery(handler)

	return handler
}
