package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/common"
)

func TestClient_ListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]models.Task{{ID: "1", Title: "x", Status: models.StatusPending}})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	c.SetTokens("tok", "")

	got, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestClient_CreateTask_SendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var p map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Buy milk", p["title"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Task{ID: "new", Title: "Buy milk", Status: models.StatusPending})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	got, err := c.CreateTask(context.Background(), models.Task{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, common.ErrNotFound},
		{"bad request", http.StatusBadRequest, common.ErrValidation},
		{"unauthorized", http.StatusUnauthorized, common.ErrUnauthorized},
		{"server error", http.StatusInternalServerError, common.ErrPersistence},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			c := NewClient(srv.URL, time.Second)
			err := c.DeleteTask(context.Background(), "any")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Login_InstallsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(TokenPair{AccessToken: "a", RefreshToken: "r"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	pair, err := c.Login(context.Background(), "u@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, "a", c.accessToken)
	assert.Equal(t, "r", c.refreshToken)
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Uptime: "1s"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	got, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Status)
}

func TestNewClient_AppliesTimeout(t *testing.T) {
	c := NewClient("http://example.com", 3*time.Second)
	assert.Equal(t, 3*time.Second, c.http.Timeout)
}

func TestClient_RetriesOnceWithRefreshedToken(t *testing.T) {
	var refreshCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "r1", body["refreshToken"])
			_ = json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "r2"})
		case "/api/tasks":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode([]models.Task{{ID: "1", Title: "x"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	c.SetTokens("stale", "r1")

	got, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "fresh", c.accessToken)
	assert.Equal(t, "r2", c.refreshToken)
}

func TestClient_RefreshFailure_SurfacesUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, time.Second)
	c.SetTokens("stale", "revoked")

	_, err := c.ListTasks(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestClient_ConnectionRefused_IsPersistenceError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)
	_, err := c.ListTasks(context.Background())
	require.ErrorIs(t, err, common.ErrPersistence)
}
