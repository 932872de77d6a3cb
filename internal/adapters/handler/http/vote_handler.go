package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	GrantID      string `json:"grant_id"`
	ResearcherID string `json:"researcher_id"`
	Action       string `json:"action"`
}

func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CastVoteInput{
		GrantID:      req.GrantID,
		ResearcherID: req.ResearcherID,
		Action:       req.Action,
	}

	vote, err := h.service.Cast(r.Context(), input)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, vote)
}

// Get reports the current vote for (grant, researcher). A missing vote is
// a normal result with a null action, not a 404.
func (h *VoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	grantID := pathParam(r, "grantID")
	researcherID := pathParam(r, "researcherID")

	vote, err := h.service.Get(r.Context(), grantID, researcherID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		GrantID      string         `json:"grant_id"`
		ResearcherID string         `json:"researcher_id"`
		Action       *domain.Action `json:"action"`
	}{
		GrantID:      grantID,
		ResearcherID: researcherID,
	}
	if vote != nil {
		resp.Action = &vote.Action
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *VoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grantID := pathParam(r, "grantID")
	researcherID := pathParam(r, "researcherID")

	if err := h.service.Delete(r.Context(), grantID, researcherID); err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrVoteNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VoteHandler) ByResearcher(w http.ResponseWriter, r *http.Request) {
	researcherID := pathParam(r, "researcherID")

	votes, err := h.service.ResearcherVotes(r.Context(), researcherID)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, votes)
}

// pathParam unescapes a chi route value; researcher ids may carry spaces
// and commas, which arrive percent-encoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidGrantID) ||
		errors.Is(err, domain.ErrInvalidResearcherID) ||
		errors.Is(err, domain.ErrInvalidAction)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
