package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fanpulse/fanpulse/internal/api/respond"
	"github.com/fanpulse/fanpulse/internal/services"
)

// QueueHandler serves the creator-wide priority queue.
type QueueHandler struct {
	queues *services.QueueService
}

func NewQueueHandler(q *services.QueueService) *QueueHandler {
	return &QueueHandler{queues: q}
}

// GetQueue GET /api/creators/{creatorId}/queue
func (h *QueueHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["creatorId"]
	queue, err := h.queues.Build(r.Context(), creatorID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, queue)
}
