package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsentinel/sentinel/internal/modules/fusion"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := fusion.NewProfileStore(fusion.DefaultProfile)
	require.NoError(t, err)

	handler := NewHandler(fusion.NewService(store, nil, zerolog.Nop()), zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGetProfile_Default(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/fusion/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "balanced", body["profile"])
	assert.Equal(t, []interface{}{"strict", "balanced", "permissive"}, body["valid_profiles"])
	assert.Contains(t, body, "ts")

	details := body["details"].(map[string]interface{})
	assert.Equal(t, "review", details["stale_handling"])
}

func TestHandleSetProfile(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPut, "/api/fusion/profile", `{"profile":"strict"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "strict", decodeBody(t, rec)["profile"])

	rec = do(router, http.MethodGet, "/api/fusion/profile", "")
	assert.Equal(t, "strict", decodeBody(t, rec)["profile"])

	rec = do(router, http.MethodPost, "/api/fusion/evaluate", `{"risk_score":0.30}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "review", body["decision"])
	assert.Equal(t, "strict", body["policy_profile"])
}

func TestHandleSetProfile_Invalid(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown profile", `{"profile":"yolo"}`},
		{"missing profile", `{}`},
		{"malformed", `{"profile":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPut, "/api/fusion/profile", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec), "error")
		})
	}

	rec := do(router, http.MethodGet, "/api/fusion/profile", "")
	assert.Equal(t, "balanced", decodeBody(t, rec)["profile"])
}

func TestHandleEvaluate(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		decision string
		guard    interface{}
	}{
		{"allow", `{"risk_score":0.1}`, "allow", nil},
		{"review", `{"risk_score":0.5}`, "review", nil},
		{"block", `{"risk_score":0.9}`, "block", nil},
		{"stale", `{"risk_score":0.1,"stale":true}`, "review", "stale_review"},
		{"uncertain", `{"risk_score":0.1,"uncertainty":0.8}`, "review", "uncertainty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/fusion/evaluate", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, true, body["ok"])
			assert.Equal(t, tt.decision, body["decision"])
			assert.Equal(t, tt.guard, body["guard_triggered"])
			assert.Equal(t, "balanced", body["policy_profile"])
			assert.Contains(t, body, "thresholds_applied")
			assert.Contains(t, body, "ts")
		})
	}
}

func TestHandleEvaluate_Metadata(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/fusion/evaluate", `{"risk_score":0.2,"metadata":{"case":"demo"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, map[string]interface{}{"case": "demo"}, decodeBody(t, rec)["metadata"])
}

func TestHandleEvaluate_EmptyMetadataEchoed(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/fusion/evaluate", `{"risk_score":0.2,"metadata":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Contains(t, body, "metadata")
	assert.Equal(t, map[string]interface{}{}, body["metadata"])

	rec = do(router, http.MethodPost, "/api/fusion/evaluate", `{"risk_score":0.2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decodeBody(t, rec), "metadata")
}

func TestHandleEvaluate_Invalid(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{`{"risk_score":2}`, `{}`, `{"risk_score":0.5,"uncertainty":-1}`, `{"risk_score":0.5,"stale":"yes"}`} {
		rec := do(router, http.MethodPost, "/api/fusion/evaluate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandleListProfiles(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/fusion/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	profiles := decodeBody(t, rec)["profiles"].([]interface{})
	assert.Len(t, profiles, 3)
}
