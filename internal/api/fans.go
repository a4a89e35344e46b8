package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fanpulse/fanpulse/internal/api/respond"
	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/store"
)

// FanHandler provides HTTP transport for fan record keeping.
type FanHandler struct {
	store store.Store
}

func NewFanHandler(s store.Store) *FanHandler {
	return &FanHandler{store: s}
}

// CreateFan POST /api/creators/{creatorId}/fans
func (h *FanHandler) CreateFan(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["creatorId"]

	var req struct {
		FanID       string     `json:"fanId,omitempty"`
		DisplayName string     `json:"displayName"`
		IsNew       *bool      `json:"isNew,omitempty"`
		AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.DisplayName == "" {
		respond.WriteBadRequest(w, "displayName is required")
		return
	}
	fan := &model.Fan{
		FanID:       req.FanID,
		CreatorID:   creatorID,
		DisplayName: req.DisplayName,
		IsNew:       true,
		AcceptedAt:  req.AcceptedAt,
	}
	if req.IsNew != nil {
		fan.IsNew = *req.IsNew
	}
	created, err := h.store.Fans().Create(r.Context(), fan)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListFans GET /api/creators/{creatorId}/fans
func (h *FanHandler) ListFans(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["creatorId"]
	fans, err := h.store.Fans().List(r.Context(), creatorID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"fans": fans, "count": len(fans)})
}

// GetFan GET /api/creators/{creatorId}/fans/{fanId}
func (h *FanHandler) GetFan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fan, err := h.store.Fans().Get(r.Context(), vars["creatorId"], vars["fanId"])
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "fan not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, fan)
}

var grantTypes = map[string]bool{
	model.GrantTrial:   true,
	model.GrantWelcome: true,
	model.GrantMonthly: true,
	model.GrantSpecial: true,
	model.GrantSingle:  true,
}

// CreateGrant POST /api/creators/{creatorId}/fans/{fanId}/grants
func (h *FanHandler) CreateGrant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Type      string    `json:"type"`
		Price     float64   `json:"price"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if !grantTypes[req.Type] {
		respond.WriteBadRequest(w, "unknown grant type")
		return
	}
	if req.ExpiresAt.IsZero() {
		respond.WriteBadRequest(w, "expiresAt is required")
		return
	}
	if !h.fanExists(w, r, vars["creatorId"], vars["fanId"]) {
		return
	}
	g, err := h.store.Grants().Create(r.Context(), &model.AccessGrant{
		CreatorID: vars["creatorId"],
		FanID:     vars["fanId"],
		Type:      req.Type,
		Price:     req.Price,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, g)
}

var purchaseKinds = map[string]bool{
	model.PurchaseExtra: true,
	model.PurchaseTip:   true,
	model.PurchaseGift:  true,
}

// CreatePurchase POST /api/creators/{creatorId}/fans/{fanId}/purchases
func (h *FanHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Amount float64 `json:"amount"`
		Tier   string  `json:"tier,omitempty"`
		Kind   string  `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if !purchaseKinds[req.Kind] {
		respond.WriteBadRequest(w, "unknown purchase kind")
		return
	}
	if req.Amount < 0 {
		respond.WriteBadRequest(w, "amount must be >= 0")
		return
	}
	if !h.fanExists(w, r, vars["creatorId"], vars["fanId"]) {
		return
	}
	p, err := h.store.Purchases().Create(r.Context(), &model.Purchase{
		CreatorID: vars["creatorId"],
		FanID:     vars["fanId"],
		Amount:    req.Amount,
		Tier:      req.Tier,
		Kind:      req.Kind,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, p)
}

var messageAudiences = map[string]bool{
	model.AudienceFan:      true,
	model.AudienceCreator:  true,
	model.AudienceInternal: true,
}

// CreateMessage POST /api/creators/{creatorId}/fans/{fanId}/messages
func (h *FanHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Sender   string `json:"sender"`
		Audience string `json:"audience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Sender != "fan" && req.Sender != "creator" && req.Sender != "other" {
		respond.WriteBadRequest(w, "unknown sender")
		return
	}
	if !messageAudiences[req.Audience] {
		respond.WriteBadRequest(w, "unknown audience")
		return
	}
	if !h.fanExists(w, r, vars["creatorId"], vars["fanId"]) {
		return
	}
	m, err := h.store.Messages().Create(r.Context(), &model.Message{
		CreatorID: vars["creatorId"],
		FanID:     vars["fanId"],
		Sender:    req.Sender,
		Audience:  req.Audience,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

// PutNote PUT /api/creators/{creatorId}/fans/{fanId}/note
func (h *FanHandler) PutNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Content == "" {
		respond.WriteBadRequest(w, "content is required")
		return
	}
	if !h.fanExists(w, r, vars["creatorId"], vars["fanId"]) {
		return
	}
	n, err := h.store.Notes().Upsert(r.Context(), &model.FanNote{
		CreatorID: vars["creatorId"],
		FanID:     vars["fanId"],
		Content:   req.Content,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

// fanExists writes the error response and returns false when the parent fan
// is missing.
func (h *FanHandler) fanExists(w http.ResponseWriter, r *http.Request, creatorID, fanID string) bool {
	if _, err := h.store.Fans().Get(r.Context(), creatorID, fanID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "fan not found")
		} else {
			respond.WriteInternalError(w, err.Error())
		}
		return false
	}
	return true
}
