// Package api is the typed client for the WanderLanka REST backend. It owns
// the one request pipeline every feature goes through: bearer-token
// injection, the web client-type marker, and session eviction on a 401 from
// an auth-tagged call. The backend is an external collaborator; nothing in
// this package implements server-side behavior.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/httpclient"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// clientTypeHeader marks every request as coming from the web client so the
// backend can distinguish web from mobile callers.
const (
	clientTypeHeader = "X-Client-Type"
	clientTypeValue  = "web"
)

// Config holds API client configuration.
type Config struct {
	BaseURL string        `env:"WANDERLANKA_API_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"WANDERLANKA_API_TIMEOUT" envDefault:"15s"`
}

// EvictedFunc is invoked after a 401 on an auth-tagged request has evicted
// the session. The dashboard shell uses it to force navigation to /login.
type EvictedFunc func(ctx context.Context)

// Client is the configured request pipeline to the backend. Built once per
// process lifetime.
type Client struct {
	baseURL   string
	transport *httpclient.CircuitBreakerClient
	vault     *session.Vault
	logger    *slog.Logger
	onEvicted EvictedFunc
}

// New creates the API client. The vault supplies the bearer token for every
// request and is cleared when an auth-tagged call returns 401.
func New(cfg Config, vault *session.Vault, logger *slog.Logger) *Client {
	hc := httpclient.New(httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxRetries:      2,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    3 * time.Second,
		MaxConnsPerHost: 20,
	})
	breaker := httpclient.NewCircuitBreakerClient(
		hc,
		httpclient.DefaultCircuitBreakerConfig("wanderlanka-backend"),
		logger,
	)

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: breaker,
		vault:     vault,
		logger:    logger,
	}
}

// OnSessionEvicted registers the hook fired after a 401 eviction.
func (c *Client) OnSessionEvicted(fn EvictedFunc) {
	c.onEvicted = fn
}

// Vault exposes the session vault backing this client.
func (c *Client) Vault() *session.Vault {
	return c.vault
}

// Ping checks backend reachability, for health checks.
func (c *Client) Ping(ctx context.Context) error {
	var out json.RawMessage
	return c.Call(ctx, http.MethodGet, "/health", nil, &out, Public())
}

// callOptions control per-request behavior.
type callOptions struct {
	// public requests never trigger session eviction on 401: a failed login
	// attempt must not log anyone out.
	public bool
}

// CallOption customizes a single API call.
type CallOption func(*callOptions)

// Public tags a call as not requiring authentication. A 401 on a public
// call passes through as an error without evicting the session.
func Public() CallOption {
	return func(o *callOptions) { o.public = true }
}

// Call issues a JSON request against the backend and decodes the response
// body into out (which may be nil for fire-and-forget calls).
func (c *Client) Call(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(clientTypeHeader, clientTypeValue)

	if token := c.vault.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperrors.Unreachable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized && !options.public {
		c.evictSession(ctx, method, path)
		// Consume the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.SessionExpired()
	}

	if resp.StatusCode >= 400 {
		return c.responseError(resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// evictSession clears the vault and fires the registered hook. Only calls
// tagged as requiring auth reach here, so a stray 401 from a public
// endpoint cannot log the user out from underneath them.
func (c *Client) evictSession(ctx context.Context, method, path string) {
	if err := c.vault.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear session after 401",
			slog.String("error", err.Error()),
		)
	}
	c.logger.InfoContext(ctx, "session evicted on 401",
		slog.String("method", method),
		slog.String("path", path),
	)
	if c.onEvicted != nil {
		c.onEvicted(ctx)
	}
}

// backendError mirrors the error bodies the backend returns. The envelope is
// inconsistent across endpoints, so both spellings are probed.
type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// responseError maps a non-2xx response onto the client error taxonomy.
func (c *Client) responseError(resp *http.Response, method, path string) error {
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr != nil {
		data = nil
	}

	message := fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)
	var be backendError
	if json.Unmarshal(data, &be) == nil {
		if be.Message != "" {
			message = be.Message
		} else if be.Error != "" {
			message = be.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case http.StatusForbidden:
		return apperrors.Forbidden(message)
	case http.StatusNotFound:
		return &apperrors.AppError{
			Code: "NOT_FOUND", Message: message,
			Status: http.StatusNotFound, Err: apperrors.ErrNotFound,
		}
	case http.StatusConflict:
		return apperrors.Conflict(message)
	default:
		return &apperrors.AppError{
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: message,
			Status:  resp.StatusCode,
			Err:     apperrors.ErrInternal,
		}
	}
}
