// Package headhunter integrates the HeadHunter vacancy API. The listing
// endpoint only returns summaries, so every fetch is two-phase: list ids
// first, then pull full details one request per id.
package headhunter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

const (
	defaultBaseURL = "https://api.hh.ru/vacancies"
	userAgent      = "HH-User-Agent"
	orderBy        = "publication_time"
)

// Professional-role category filters applied to every listing request.
var roleCategories = []int{96, 165}

type Fetcher struct {
	workers int
	client  *http.Client
	baseURL string
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		workers: 5,
		client:  http.DefaultClient,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

type Option func(*Fetcher)

func WithWorkers(n int) Option {
	return func(f *Fetcher) { f.workers = n }
}

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

func (f *Fetcher) Name() vacancy.Platform { return vacancy.PlatformHeadHunter }

type listResponse struct {
	Items []source.RawItem `json:"items"`
}

// Fetch lists vacancy summaries for the given params and resolves each one
// to its full detail payload. Detail calls run concurrently; an individual
// failure drops that item but keeps the rest, preserving listing order.
func (f *Fetcher) Fetch(ctx context.Context, params source.Params) ([]source.RawItem, error) {
	items, err := f.list(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("headhunter: %w", source.ErrNoResults)
	}

	details := make([]source.RawItem, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, item := range items {
		id := itemID(item)
		if id == "" {
			continue
		}
		g.Go(func() error {
			detail, err := f.getDetail(ctx, id)
			if err != nil {
				slog.Error("error retrieving headhunter vacancy", "id", id, "error", err)
				return nil // continue other items
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetched := make([]source.RawItem, 0, len(details))
	for _, d := range details {
		if d != nil {
			fetched = append(fetched, d)
		}
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("headhunter: all detail requests failed: %w", source.ErrNoResults)
	}

	slog.Info("retrieved headhunter vacancies", "requested", len(items), "fetched", len(fetched))
	return fetched, nil
}

func (f *Fetcher) list(ctx context.Context, params source.Params) ([]source.RawItem, error) {
	values := url.Values{}
	values.Set("text", params.Query)
	values.Set("per_page", strconv.Itoa(params.PerPage))
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("order_by", orderBy)
	for _, role := range roleCategories {
		values.Add("professional_role", strconv.Itoa(role))
	}

	body, err := f.get(ctx, f.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("headhunter: parse listing: %w", err)
	}
	return list.Items, nil
}

func (f *Fetcher) getDetail(ctx context.Context, id string) (source.RawItem, error) {
	body, err := f.get(ctx, f.baseURL+"/"+id)
	if err != nil {
		return nil, err
	}

	var item source.RawItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("headhunter: parse vacancy %s: %w", id, err)
	}
	return item, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("headhunter returned HTTP %d", res.StatusCode)
	}

	return io.ReadAll(res.Body)
}

// itemID extracts the native id, which HeadHunter serves as a JSON string.
func itemID(item source.RawItem) string {
	switch v := item["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
