package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/core/config"
	"outings-api/core/constants"
)

type envelope struct {
	Status  any             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "outings-api", Version: "test"},
		Generation: config.GenerationConfig{Model: "gemini-2.5-flash", BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		Feed:       config.FeedConfig{HomeSize: 3},
		Seed:       config.SeedConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	srv, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(srv.drafts.Close)
	return srv.Handler()
}

func call(t *testing.T, h http.Handler, method, path, userID string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(constants.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_LoginAndPages(t *testing.T) {
	h := newTestServer(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "user-2", login.User.ID)

	code, env = call(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, constants.MsgUserNotFound, env.Message)

	code, _ = call(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"name": "Zoé", "email": "zoe@example.com"})
	assert.Equal(t, http.StatusNotImplemented, code)

	code, env = call(t, h, http.MethodGet, "/api/v1/pages/home", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Page string `json:"page"`
		Data struct {
			Activities []struct {
				ID string `json:"id"`
			} `json:"activities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "home", page.Page)
	assert.Len(t, page.Data.Activities, 3)

	code, env = call(t, h, http.MethodGet, "/api/v1/me/profile", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "auth", page.Page)

	code, _ = call(t, h, http.MethodGet, "/api/v1/activities?search=port&view=map", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, h, http.MethodGet, "/api/v1/activities/act-missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, h, http.MethodGet, "/api/v1/pages/home", "user-404", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServer_RegistrationFlow(t *testing.T) {
	h := newTestServer(t)

	code, _ := call(t, h, http.MethodPost, "/api/v1/activities/act-2/registrations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := call(t, h, http.MethodPost, "/api/v1/activities/act-2/registrations", "user-3", nil)
	require.Equal(t, http.StatusCreated, code)
	var reg struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.Equal(t, "pending", reg.Status)

	code, env = call(t, h, http.MethodGet, "/api/v1/notifications/unread-count", "user-2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count": 1}`, string(env.Data))

	code, env = call(t, h, http.MethodPost, "/api/v1/activities/act-2/registrations", "user-3", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, constants.MsgAlreadyRegistered, env.Message)

	code, _ = call(t, h, http.MethodPut, "/api/v1/registrations/"+reg.ID+"/status", "user-1", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, h, http.MethodPut, "/api/v1/registrations/"+reg.ID+"/status", "user-2", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, h, http.MethodPut, "/api/v1/registrations/"+reg.ID+"/status", "user-2", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = call(t, h, http.MethodPut, "/api/v1/registrations/reg-unknown/status", "user-2", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"applied": false}`, string(env.Data))

	code, _ = call(t, h, http.MethodDelete, "/api/v1/activities/act-2/registrations", "user-3", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, h, http.MethodDelete, "/api/v1/activities/act-2/registrations", "user-3", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestServer_CreateActivityAndComment(t *testing.T) {
	h := newTestServer(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/activities", "user-1", map[string]any{"title": "Sans lieu"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, constants.MsgRequiredFields, env.Message)

	code, _ = call(t, h, http.MethodPost, "/api/v1/activities", "user-1", map[string]any{
		"title":    "Yoga au parc",
		"location": "Parc Borély, Marseille",
		"datetime": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"type":     "Sport",
	})
	assert.Equal(t, http.StatusCreated, code)

	code, _ = call(t, h, http.MethodPost, "/api/v1/activities/act-4/comments", "user-2", map[string]any{"content": "Top", "rating": 5})
	assert.Equal(t, http.StatusCreated, code)

	code, _ = call(t, h, http.MethodPost, "/api/v1/activities/act-1/comments", "user-2", map[string]any{"content": "Top", "rating": 5})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestServer_DraftWithoutCredential(t *testing.T) {
	h := newTestServer(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/drafts", "user-1", map[string]any{"location": "Annecy"})
	require.Equal(t, http.StatusCreated, code)
	var draft struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))

	code, env = call(t, h, http.MethodPost, "/api/v1/drafts/"+draft.ID+"/generate?wait=true", "user-1", map[string]string{"prompt": "tour du lac"})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.Equal(t, constants.MsgGenerationFailed, draft.Error)

	code, _ = call(t, h, http.MethodGet, "/api/v1/drafts/"+draft.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, h, http.MethodDelete, "/api/v1/drafts/"+draft.ID, "user-1", nil)
	assert.Equal(t, http.StatusOK, code)
}
