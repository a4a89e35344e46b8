package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fanpulse/fanpulse/internal/api"
	"github.com/fanpulse/fanpulse/internal/model"
	"github.com/fanpulse/fanpulse/internal/monetize"
	"github.com/fanpulse/fanpulse/internal/services"
	"github.com/fanpulse/fanpulse/internal/store/sqlite"
)

type staticHealth bool

func (h staticHealth) IsHealthy() bool { return bool(h) }

func newTestServer(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := sqlite.New(db)
	log := zerolog.Nop()
	queues := services.NewQueueService(st, log)
	summaries := services.NewSummaryService(st, monetize.NewStoreProvider(st), queues, log, true)

	srv := httptest.NewServer(api.NewRouter(api.RouterDeps{
		Store:     st,
		Summaries: summaries,
		Queues:    queues,
		Health:    staticHealth(healthy),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createFan(t *testing.T, base, creatorID, name string) model.Fan {
	t.Helper()
	resp := postJSON(t, fmt.Sprintf("%s/api/creators/%s/fans", base, creatorID),
		map[string]any{"displayName": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Fan](t, resp)
}

func TestCreateAndGetFan(t *testing.T) {
	srv := newTestServer(t, true)

	fan := createFan(t, srv.URL, "c1", "Ana")
	require.NotEmpty(t, fan.FanID)
	require.Equal(t, "c1", fan.CreatorID)
	require.True(t, fan.IsNew)

	resp, err := http.Get(fmt.Sprintf("%s/api/creators/c1/fans/%s", srv.URL, fan.FanID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.Fan](t, resp)
	require.Equal(t, fan.FanID, got.FanID)
	require.Equal(t, "Ana", got.DisplayName)
}

func TestGetFan_NotFound(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/api/creators/c1/fans/ghost")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFan_RequiresDisplayName(t *testing.T) {
	srv := newTestServer(t, true)

	resp := postJSON(t, srv.URL+"/api/creators/c1/fans", map[string]any{})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateGrant_RejectsUnknownType(t *testing.T) {
	srv := newTestServer(t, true)
	fan := createFan(t, srv.URL, "c1", "Ana")

	resp := postJSON(t, fmt.Sprintf("%s/api/creators/c1/fans/%s/grants", srv.URL, fan.FanID),
		map[string]any{"type": "lifetime", "expiresAt": time.Now().AddDate(0, 1, 0)})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	fan := createFan(t, srv.URL, "c1", "Ana")
	base := fmt.Sprintf("%s/api/creators/c1/fans/%s", srv.URL, fan.FanID)

	resp := postJSON(t, base+"/grants", map[string]any{
		"type": "monthly", "price": 25, "expiresAt": time.Now().UTC().AddDate(0, 0, 20),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, base+"/purchases", map[string]any{"amount": 40, "kind": "extra"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, base+"/messages", map[string]any{"sender": "fan", "audience": "FAN"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	getResp, err := http.Get(base + "/summary")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	sum := decode[model.FanSummary](t, getResp)

	require.Equal(t, fan.FanID, sum.FanID)
	require.Equal(t, "Ana", sum.DisplayName)
	require.GreaterOrEqual(t, sum.HealthScore, 0)
	require.LessOrEqual(t, sum.HealthScore, 100)
	require.NotEmpty(t, sum.Segment)
	require.NotEmpty(t, sum.Advice.Action)
	require.True(t, sum.Monetization.SubscriptionActive)
	require.Equal(t, 40.0, sum.Monetization.ExtrasTotal)
	require.NotNil(t, sum.QueueRank)
	require.Equal(t, 1, *sum.QueueRank)
}

func TestSummaryEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/api/creators/c1/fans/ghost/summary")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQueueEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	a := createFan(t, srv.URL, "c1", "Ana")
	b := createFan(t, srv.URL, "c1", "Bo")

	resp, err := http.Get(srv.URL + "/api/creators/c1/queue")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	q := decode[model.Queue](t, resp)

	require.Equal(t, "c1", q.CreatorID)
	require.Len(t, q.Rows, 2)
	require.Equal(t, 2, q.Stats.Total)
	ids := []string{q.Rows[0].FanID, q.Rows[1].FanID}
	require.Contains(t, ids, a.FanID)
	require.Contains(t, ids, b.FanID)
	require.Equal(t, 1, q.Rows[0].Rank)
	require.Equal(t, 2, q.Rows[1].Rank)
}

func TestNoteRoundTrip(t *testing.T) {
	srv := newTestServer(t, true)
	fan := createFan(t, srv.URL, "c1", "Ana")
	noteURL := fmt.Sprintf("%s/api/creators/c1/fans/%s/note", srv.URL, fan.FanID)

	body, _ := json.Marshal(map[string]any{"content": "prefers mornings"})
	req, err := http.NewRequest(http.MethodPut, noteURL, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note := decode[model.FanNote](t, resp)
	require.Equal(t, "prefers mornings", note.Content)

	sumResp, err := http.Get(fmt.Sprintf("%s/api/creators/c1/fans/%s/summary", srv.URL, fan.FanID))
	require.NoError(t, err)
	sum := decode[model.FanSummary](t, sumResp)
	require.NotNil(t, sum.LatestNote)
	require.Equal(t, "prefers mornings", sum.LatestNote.Content)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	down := newTestServer(t, false)
	resp2, err := http.Get(down.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	require.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
}
