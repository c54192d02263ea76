// Package api is a thin typed client for the ZeroTask REST backend.
// It maps HTTP statuses onto the shared sentinel errors so callers can use
// errors.Is instead of inspecting responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/common"
)

// Client talks to one server. It is safe for concurrent use once constructed;
// SetTokens is expected to be called from the single CLI event loop only.
type Client struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

// NewClient builds a client for the given base URL. The timeout bounds every
// request end to end; zero means no limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokens installs the session tokens used for authenticated requests.
func (c *Client) SetTokens(access, refresh string) {
	c.accessToken = access
	c.refreshToken = refresh
}

// TokenPair is the session issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// HealthStatus mirrors the /health response.
type HealthStatus struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

type taskPayload struct {
	ID          string            `json:"id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status,omitempty"`
	CreatedAt   int64             `json:"createdAt,omitempty"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Health probes server liveness.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password}, nil)
}

// Login authenticates and installs the returned tokens on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetTokens(out.AccessToken, out.RefreshToken)
	return &out, nil
}

// Refresh exchanges the refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) (*TokenPair, error) {
	body := map[string]string{"refreshToken": c.refreshToken}
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, &out); err != nil {
		return nil, err
	}
	c.SetTokens(out.AccessToken, out.RefreshToken)
	return &out, nil
}

// Logout revokes the refresh token server-side and drops the local session.
func (c *Client) Logout(ctx context.Context) error {
	body := map[string]string{"refreshToken": c.refreshToken}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", body, nil)
	c.SetTokens("", "")
	return err
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task. When t carries an id/createdAt (import path),
// the server preserves them; otherwise it assigns fresh ones.
func (c *Client) CreateTask(ctx context.Context, t models.Task) (*models.Task, error) {
	var out models.Task
	p := taskPayload{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status, CreatedAt: t.CreatedAt}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask replaces the mutable fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, t models.Task) (*models.Task, error) {
	var out models.Task
	p := taskPayload{Title: t.Title, Description: t.Description, Status: t.Status}
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+t.ID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes one task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// ClearTasks removes every task owned by the caller.
func (c *Client) ClearTasks(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks", nil, nil)
}

// Audit returns the server-side audit trail for the caller, newest first.
func (c *Client) Audit(ctx context.Context) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/api/audit", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues the request and, when an authenticated call comes back 401 with a
// refresh token on hand, rotates the session once and retries. Auth endpoints
// are excluded so a rejected login or refresh is final.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.doOnce(ctx, method, path, body, out)
	if errors.Is(err, common.ErrUnauthorized) && c.refreshToken != "" && !strings.HasPrefix(path, "/api/auth/") {
		if _, rerr := c.Refresh(ctx); rerr != nil {
			return err
		}
		return c.doOnce(ctx, method, path, body, out)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return common.ErrNotFound
	case code == http.StatusBadRequest:
		return common.ErrValidation
	case code == http.StatusUnauthorized:
		return common.ErrUnauthorized
	default:
		return fmt.Errorf("%w: unexpected status %d", common.ErrPersistence, code)
	}
}
