package vacancy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const defaultPageSize = 5

// fetchAheadFactor sizes upstream refill requests relative to the local page
// so one replenishment buys more than a single page of headroom.
const fetchAheadFactor = 2

// ReplenishFunc tops up the store from all upstream sources and reports
// whether at least one of them succeeded. upstreamPage is the zero-based
// upstream page index.
type ReplenishFunc func(ctx context.Context, query string, upstreamPage, perPage int) bool

// Service serves cached vacancies: multi-term search over the stored records
// and fixed-size pagination that transparently refills the store when the
// caller reaches the tail of what is cached.
type Service struct {
	repo      Repository
	pageSize  int
	replenish ReplenishFunc
}

func NewService(repo Repository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		repo:     repo,
		pageSize: pageSize,
	}
}

// SetReplenish sets the hook invoked when pagination reaches the last cached
// page. Without it the paginator only ever serves what is stored.
func (s *Service) SetReplenish(fn ReplenishFunc) { s.replenish = fn }

func (s *Service) PageSize() int { return s.pageSize }

// Search returns the stored vacancies matching the query, most recently
// published first. The query splits on whitespace into terms that must all
// match (AND); a term matches if it is a case-insensitive substring of the
// title, company name, description or city name.
func (s *Service) Search(ctx context.Context, query string) ([]Vacancy, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return records, nil
	}

	matched := make([]Vacancy, 0, len(records))
	for _, v := range records {
		if matchesAll(v, terms) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func matchesAll(v Vacancy, terms []string) bool {
	fields := []string{
		strings.ToLower(v.Title),
		strings.ToLower(v.Company),
		strings.ToLower(v.Description),
		strings.ToLower(v.City),
	}
	for _, term := range terms {
		found := false
		for _, field := range fields {
			if strings.Contains(field, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Paginate serves one fixed-size page of search results. When the requested
// page turns out to be the last cached page, the replenish hook runs first;
// if any source delivered new records the result set is recomputed from
// scratch, which is safe because upserts are idempotent. Failed refills only
// get logged: the caller always receives a well-formed page.
func (s *Service) Paginate(ctx context.Context, query string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	results, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	current, totalPages := clampPage(page, len(results), s.pageSize)

	if current == totalPages && s.replenish != nil {
		if ok := s.replenish(ctx, query, current-1, s.pageSize*fetchAheadFactor); ok {
			results, err = s.Search(ctx, query)
			if err != nil {
				return nil, err
			}
			current, totalPages = clampPage(page, len(results), s.pageSize)
		} else {
			slog.Error("pagination: replenishment failed for all sources", "query", query, "page", current)
		}
	}

	return s.slice(results, current, totalPages), nil
}

func clampPage(page, total, pageSize int) (current, totalPages int) {
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	current = page
	if current > totalPages {
		current = totalPages
	}
	return current, totalPages
}

func (s *Service) slice(results []Vacancy, current, totalPages int) *Page {
	start := (current - 1) * s.pageSize
	if start > len(results) {
		start = len(results)
	}
	end := start + s.pageSize
	if end > len(results) {
		end = len(results)
	}

	p := &Page{
		Pagination: Pagination{
			CurrentPage: current,
			TotalPages:  totalPages,
			HasNext:     current < totalPages,
			HasPrevious: current > 1,
		},
		Vacancies: results[start:end],
	}
	if p.Pagination.HasNext {
		next := current + 1
		p.Pagination.NextPageNumber = &next
	}
	if p.Pagination.HasPrevious {
		previous := current - 1
		p.Pagination.PreviousPageNumber = &previous
	}
	if p.Vacancies == nil {
		p.Vacancies = []Vacancy{}
	}
	return p
}
