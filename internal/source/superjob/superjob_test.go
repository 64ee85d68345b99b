package superjob

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobdigest/vacancy-api/internal/source"
)

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-App-Id") != "secret" {
			t.Errorf("missing api key header")
		}
		if r.URL.Query().Get("catalogues") != "33" {
			t.Errorf("unexpected catalogues: %s", r.URL.Query().Get("catalogues"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"objects": []map[string]any{
				{"id": 1, "profession": "Go Developer"},
				{"id": 2, "profession": "Python Developer"},
			},
		})
	}))
	defer ts.Close()

	f := New("secret", WithClient(ts.Client()), WithBaseURL(ts.URL))

	raws, err := f.Fetch(context.Background(), source.Params{Query: "developer", PerPage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 items, got %d", len(raws))
	}
}

func TestFetch_MissingKey(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer ts.Close()

	f := New("", WithClient(ts.Client()), WithBaseURL(ts.URL))

	_, err := f.Fetch(context.Background(), source.Params{})
	if !errors.Is(err, source.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if called {
		t.Error("no network call expected without a credential")
	}
}

func TestFetch_EmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"objects": []any{}})
	}))
	defer ts.Close()

	f := New("secret", WithClient(ts.Client()), WithBaseURL(ts.URL))

	_, err := f.Fetch(context.Background(), source.Params{})
	if !errors.Is(err, source.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestFetch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	f := New("secret", WithClient(ts.Client()), WithBaseURL(ts.URL))

	_, err := f.Fetch(context.Background(), source.Params{})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, source.ErrNoResults) {
		t.Fatal("transport failure must not look like an empty result")
	}
}

func TestNormalize(t *testing.T) {
	raw := source.RawItem{
		"id":              float64(445566),
		"profession":      "Go Developer",
		"payment_from":    float64(120000),
		"payment_to":      float64(0),
		"currency":        "rub",
		"link":            "https://superjob.example/vakansii/445566",
		"firm_name":       "Acme",
		"town":            map[string]any{"title": "SPB"},
		"experience":      map[string]any{"title": "3-6 years"},
		"type_of_work":    map[string]any{"title": "Full-time"},
		"place_of_work":   map[string]any{"title": "Remote"},
		"education":       map[string]any{"title": "Higher"},
		"catalogues":      []any{map[string]any{"title": "IT"}, map[string]any{"title": "Development"}},
		"vacancyRichText": "<p>Ship backend services</p>",
		"address":         "SPB, Nevsky 1",
		"phone":           "+7 000 000-00-00",
		"date_published":  float64(1715080200),
	}

	v, err := New("secret").Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Key != "superjob445566" {
		t.Errorf("key: got %q", v.Key)
	}
	if v.Salary != "from 120000 RUR" {
		t.Errorf("salary: got %q", v.Salary)
	}
	if v.Company != "Acme" || v.City != "SPB" {
		t.Errorf("company/city: got %q/%q", v.Company, v.City)
	}
	if v.Skills != "IT, Development" {
		t.Errorf("skills: got %q", v.Skills)
	}
	if v.Description != "Ship backend services" {
		t.Errorf("description: got %q", v.Description)
	}
	if v.PublishedAt == nil {
		t.Fatal("expected published at")
	}
}

func TestNormalize_ZeroSalaryBounds(t *testing.T) {
	v, err := New("secret").Normalize(source.RawItem{
		"id":           float64(1),
		"payment_from": float64(0),
		"payment_to":   float64(0),
		"currency":     "rub",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Salary != "negotiable" {
		t.Errorf("salary: got %q, want negotiable", v.Salary)
	}
}

func TestNormalize_MissingID(t *testing.T) {
	if _, err := New("secret").Normalize(source.RawItem{"profession": "broken"}); err == nil {
		t.Fatal("expected error for item without id")
	}
}
