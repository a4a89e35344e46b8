package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fanpulse/fanpulse/internal/api/recovery"
	"github.com/fanpulse/fanpulse/internal/services"
	"github.com/fanpulse/fanpulse/internal/store"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Store     store.Store
	Summaries *services.SummaryService
	Queues    *services.QueueService
	Health    HealthReporter
}

// NewRouter wires all endpoints under /api with panic recovery applied to
// the whole tree.
func NewRouter(deps RouterDeps) *mux.Router {
	fans := NewFanHandler(deps.Store)
	summaries := NewSummaryHandler(deps.Summaries)
	queues := NewQueueHandler(deps.Queues)
	healthz := NewHealthHandler(deps.Health)

	r := mux.NewRouter()
	r.Use(recovery.Middleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", healthz.GetHealth).Methods(http.MethodGet)

	api.HandleFunc("/creators/{creatorId}/fans", fans.CreateFan).Methods(http.MethodPost)
	api.HandleFunc("/creators/{creatorId}/fans", fans.ListFans).Methods(http.MethodGet)
	api.HandleFunc("/creators/{creatorId}/fans/{fanId}", fans.GetFan).Methods(http.MethodGet)

	api.HandleFunc("/creators/{creatorId}/fans/{fanId}/grants", fans.CreateGrant).Methods(http.MethodPost)
	api.HandleFunc("/creators/{creatorId}/fans/{fanId}/purchases", fans.CreatePurchase).Methods(http.MethodPost)
	api.HandleFunc("/creators/{creatorId}/fans/{fanId}/messages", fans.CreateMessage).Methods(http.MethodPost)
	api.HandleFunc("/creators/{creatorId}/fans/{fanId}/note", fans.PutNote).Methods(http.MethodPut)

	api.HandleFunc("/creators/{creatorId}/fans/{fanId}/summary", summaries.GetSummary).Methods(http.MethodGet)
	api.HandleFunc("/creators/{creatorId}/queue", queues.GetQueue).Methods(http.MethodGet)

	return r
}
