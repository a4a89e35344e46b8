package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fanpulse/fanpulse/internal/api/respond"
	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/services"
)

// SummaryHandler serves the per-fan relationship summary.
type SummaryHandler struct {
	summaries *services.SummaryService
}

func NewSummaryHandler(s *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: s}
}

// GetSummary GET /api/creators/{creatorId}/fans/{fanId}/summary
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	summary, err := h.summaries.Build(r.Context(), vars["creatorId"], vars["fanId"])
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "fan not found")
		} else {
			respond.WriteInternalError(w, err.Error())
		}
		return
	}
	respond.WriteJSON(w, http.StatusOK, summary)
}
