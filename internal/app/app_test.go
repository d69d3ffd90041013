package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"job-board/internal/config"
	"job-board/internal/domain/user"
	"job-board/internal/repository"
	"job-board/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

type memUsers struct {
	mu    sync.Mutex
	users []user.User
}

func (m *memUsers) Create(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	hub := ws.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})

	c := &Container{
		Config: config.Config{
			App: config.AppConfig{AppName: "job-board-test", JobStore: config.JobStoreMemory},
			JWT: config.JWTConfig{
				AccessSecret:     "access",
				RefreshSecret:    "refresh",
				AccessExpiresIn:  time.Minute,
				RefreshExpiresIn: time.Hour,
			},
		},
		Jobs:   repository.NewMemoryJobRepository(),
		Users:  &memUsers{},
		Hub:    hub,
		Events: hub,
	}
	return New(c)
}

func call(t *testing.T, a *App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestApp_HealthAndAuthFlow(t *testing.T) {
	a := newTestApp(t)

	status, body := call(t, a, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SUCCESS", body["status"])

	status, body = call(t, a, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "dev@example.com", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	access := data["accessToken"].(string)
	refresh := data["refreshToken"].(string)

	status, _ = call(t, a, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "dev@example.com", "password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, a, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "dev@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = call(t, a, http.MethodPost, "/auth/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["data"].(map[string]any)["accessToken"])

	status, body = call(t, a, http.MethodGet, "/users/me", access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dev@example.com", body["data"].(map[string]any)["email"])

	status, _ = call(t, a, http.MethodPost, "/auth/logout", access, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestApp_JobRoutesRequireAuth(t *testing.T) {
	a := newTestApp(t)

	status, body := call(t, a, http.MethodPost, "/jobs", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, map[string]any{"message": "Unauthorized"}, body)

	status, _ = call(t, a, http.MethodPut, "/jobs/5f0000000000000000000000", "garbage", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = call(t, a, http.MethodGet, "/jobs", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"data": []any{}}, body)
}
