// Package source defines the capability every integrated job board exposes
// to the ingestion layer: a paginated fetch returning loosely-typed raw items
// and a pure normalizer converting one raw item to the canonical record.
// Raw items never cross past this boundary.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

// ErrNoResults reports that the upstream responded with zero usable items.
var ErrNoResults = errors.New("no vacancies found")

// ErrMissingCredential reports an absent API credential. It is raised before
// any network call and is fatal to that source's fetch only.
var ErrMissingCredential = errors.New("missing api credential")

// RawItem is one vendor payload as decoded from JSON, untyped on purpose.
type RawItem map[string]any

// Params carries the fetch parameters forwarded to a source. Page is the
// zero-based upstream page index; each adapter maps the fields to its own
// vendor parameter names.
type Params struct {
	Query   string
	PerPage int
	Page    int
}

type Source interface {
	Name() vacancy.Platform
	Fetch(ctx context.Context, params Params) ([]RawItem, error)
	Normalize(raw RawItem) (*vacancy.Vacancy, error)
}

type Registry struct {
	mu      sync.RWMutex
	sources map[vacancy.Platform]Source
}

func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[vacancy.Platform]Source),
	}
}

func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.Name()] = s
}

func (r *Registry) Get(name vacancy.Platform) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("source not found for platform: %s", name)
	}
	return s, nil
}

func (r *Registry) Names() []vacancy.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]vacancy.Platform, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}
