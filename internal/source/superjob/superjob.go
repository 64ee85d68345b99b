// Package superjob integrates the SuperJob 2.0 vacancy API. One listing call
// already carries full vacancy details, so fetches are single-phase; the API
// requires an application key sent with every request.
package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

const (
	defaultBaseURL = "https://api.superjob.ru/2.0/vacancies"
	apiKeyHeader   = "X-Api-App-Id"
	catalogue      = 33
)

type Fetcher struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// New creates a Fetcher. The API key is injected here rather than read from
// the environment at call time; an empty key makes every Fetch fail fast
// with ErrMissingCredential.
func New(apiKey string, opts ...Option) *Fetcher {
	f := &Fetcher{
		apiKey:  apiKey,
		client:  http.DefaultClient,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

type Option func(*Fetcher)

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

func (f *Fetcher) Name() vacancy.Platform { return vacancy.PlatformSuperJob }

type listResponse struct {
	Objects []source.RawItem `json:"objects"`
}

// Fetch retrieves one page of vacancies. An empty result set is reported as
// ErrNoResults so the caller can distinguish it from transport failures.
func (f *Fetcher) Fetch(ctx context.Context, params source.Params) ([]source.RawItem, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("superjob: %w", source.ErrMissingCredential)
	}

	values := url.Values{}
	values.Set("keyword", params.Query)
	values.Set("count", strconv.Itoa(params.PerPage))
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("catalogues", strconv.Itoa(catalogue))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, f.apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("superjob returned HTTP %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("superjob: parse response: %w", err)
	}

	if len(list.Objects) == 0 {
		return nil, fmt.Errorf("superjob: %w", source.ErrNoResults)
	}

	slog.Info("retrieved superjob vacancies", "count", len(list.Objects))
	return list.Objects, nil
}
