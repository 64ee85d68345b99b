// Package ingest drives one source's fetch → normalize → upsert pipeline and
// coordinates concurrent runs across all registered sources.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome is the structured result of one ingestion run. It is safe to
// return to callers verbatim: fetch errors never escape as Go errors.
type Outcome struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Vacancies []vacancy.Vacancy `json:"vacancies,omitempty"`
	Code      int               `json:"-"`
}

func (o Outcome) OK() bool { return o.Status == StatusSuccess }

type Orchestrator struct {
	registry *source.Registry
	repo     vacancy.Repository
}

func NewOrchestrator(registry *source.Registry, repo vacancy.Repository) *Orchestrator {
	return &Orchestrator{registry: registry, repo: repo}
}

// Run ingests one source: fetch, then normalize and upsert every raw item
// sequentially in fetch order. The first normalize/upsert failure aborts the
// rest of the run; items saved before it stay committed, and a rerun is safe
// because the upsert is idempotent.
func (o *Orchestrator) Run(ctx context.Context, name vacancy.Platform, params source.Params) Outcome {
	src, err := o.registry.Get(name)
	if err != nil {
		slog.Error("ingest: unknown platform", "platform", name, "error", err)
		return parseErrorOutcome()
	}

	raws, err := src.Fetch(ctx, params)
	if err != nil {
		if errors.Is(err, source.ErrNoResults) {
			slog.Warn("ingest: no vacancies found", "platform", name, "query", params.Query)
			return Outcome{
				Status:  StatusError,
				Message: "Vacancies not found",
				Code:    http.StatusNotFound,
			}
		}
		slog.Error("ingest: fetch failed", "platform", name, "error", err)
		return parseErrorOutcome()
	}

	saved := make([]vacancy.Vacancy, 0, len(raws))
	for _, raw := range raws {
		v, err := src.Normalize(raw)
		if err != nil {
			slog.Error("ingest: normalize failed", "platform", name, "error", err)
			return parseErrorOutcome()
		}
		if err := o.repo.Upsert(ctx, v); err != nil {
			slog.Error("ingest: upsert failed", "platform", name, "key", v.Key, "error", err)
			return parseErrorOutcome()
		}
		saved = append(saved, *v)
	}

	slog.Info("ingest: saved vacancies", "platform", name, "count", len(saved))
	return Outcome{
		Status:    StatusSuccess,
		Message:   fmt.Sprintf("Saved %d vacancies", len(saved)),
		Vacancies: saved,
		Code:      http.StatusOK,
	}
}

func parseErrorOutcome() Outcome {
	return Outcome{
		Status:  StatusError,
		Message: "Parsing error",
		Code:    http.StatusInternalServerError,
	}
}

// Coordinator fans one ingestion request out to every registered source.
type Coordinator struct {
	orchestrator *Orchestrator
	registry     *source.Registry
}

func NewCoordinator(orchestrator *Orchestrator, registry *source.Registry) *Coordinator {
	return &Coordinator{orchestrator: orchestrator, registry: registry}
}

// RunAll ingests all sources concurrently with the same generic params and
// collects their outcomes independently: a failing source never cancels its
// siblings, and the store stays consistent because upserts commute across
// distinct identity keys.
func (c *Coordinator) RunAll(ctx context.Context, params source.Params) map[vacancy.Platform]Outcome {
	names := c.registry.Names()
	outcomes := make([]Outcome, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			outcomes[i] = c.orchestrator.Run(ctx, name, params)
			return nil
		})
	}
	_ = g.Wait()

	byName := make(map[vacancy.Platform]Outcome, len(names))
	for i, name := range names {
		byName[name] = outcomes[i]
	}
	return byName
}

// AnyOK reports whether at least one source ingested successfully.
func AnyOK(outcomes map[vacancy.Platform]Outcome) bool {
	for _, o := range outcomes {
		if o.OK() {
			return true
		}
	}
	return false
}
