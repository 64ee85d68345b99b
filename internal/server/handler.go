package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jobdigest/vacancy-api/internal/apperror"
	"github.com/jobdigest/vacancy-api/internal/ingest"
	"github.com/jobdigest/vacancy-api/internal/source"
	"github.com/jobdigest/vacancy-api/internal/vacancy"
)

type handler struct {
	vacancySvc   *vacancy.Service
	orchestrator *ingest.Orchestrator
	registry     *source.Registry
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listPlatforms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Names())
}

// listVacancies serves one page of cached vacancies; the paginator refills
// the store by itself when the caller hits the cached tail.
func (h *handler) listVacancies(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			appErr := apperror.New(apperror.BadRequest, "invalid page number")
			writeError(w, appErr.HTTPStatus(), appErr.Message())
			return
		}
		page = n
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))

	result, err := h.vacancySvc.Paginate(r.Context(), query, page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ingestPlatform triggers one source's ingestion run and relays its outcome
// at the outcome's HTTP-equivalent status code.
func (h *handler) ingestPlatform(w http.ResponseWriter, r *http.Request) {
	platform := vacancy.Platform(r.PathValue("platform"))
	if _, err := h.registry.Get(platform); err != nil {
		appErr := apperror.New(apperror.NotFound, err.Error())
		writeError(w, appErr.HTTPStatus(), appErr.Message())
		return
	}

	q := r.URL.Query()

	params := source.Params{
		Query:   strings.TrimSpace(q.Get("search")),
		PerPage: h.vacancySvc.PageSize() * 2,
	}
	if v := q.Get("perPage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			appErr := apperror.New(apperror.BadRequest, "invalid perPage")
			writeError(w, appErr.HTTPStatus(), appErr.Message())
			return
		}
		params.PerPage = n
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			appErr := apperror.New(apperror.BadRequest, "invalid page number")
			writeError(w, appErr.HTTPStatus(), appErr.Message())
			return
		}
		params.Page = n
	}

	outcome := h.orchestrator.Run(r.Context(), platform, params)
	writeJSON(w, outcome.Code, outcome)
}
