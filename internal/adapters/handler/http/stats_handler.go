package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
	"github.com/wheresmygrants/grantvotes/internal/core/services"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

func (h *StatsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	grantID := pathParam(r, "grantID")

	totals, err := h.service.Totals(r.Context(), grantID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

func (h *StatsHandler) Ratio(w http.ResponseWriter, r *http.Request) {
	grantID := pathParam(r, "grantID")

	ratio, err := h.service.Ratio(r.Context(), grantID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ratio)
}

func (h *StatsHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := services.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, domain.ErrInvalidLimit.Error(), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ranking, err := h.service.Top(r.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ranking)
}

func (h *StatsHandler) ResearcherSummary(w http.ResponseWriter, r *http.Request) {
	researcherID := pathParam(r, "researcherID")

	summary, err := h.service.ResearcherSummary(r.Context(), researcherID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	grantID := pathParam(r, "grantID")

	trend, err := h.service.Trend(r.Context(), grantID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, trend)
}

func (h *StatsHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	votes, err := h.service.ExportAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, votes)
}

func (h *StatsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="votes.csv"`)
	if err := h.service.ExportCSV(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *StatsHandler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Health(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
