// Package api implements the HTTP client for the GitWise REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gitwise/internal/models"
	"gitwise/internal/observability"

	"github.com/golang-jwt/jwt/v5"
)

// Client issues authenticated JSON requests against the backend.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	reqLog  *observability.RequestLogger

	mu       sync.RWMutex
	token    string
	tokenExp time.Time
}

// NewClient creates a Client for the given base URL. The timeout bounds
// each request unless the caller's context carries an earlier deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
		reqLog:  observability.NewRequestLogger(),
	}
}

// SetToken stores the bearer token for subsequent requests. The token
// is treated as opaque, but when it parses as a JWT its expiry claim is
// kept so callers can precheck expired sessions.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenExp = time.Time{}
	if token == "" {
		return
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.tokenExp = exp.Time
	}
}

// ClearToken drops the stored bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the stored bearer token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// TokenExpired reports whether the stored token carries an expiry claim
// that has passed. Opaque tokens never report expired.
func (c *Client) TokenExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.tokenExp.IsZero() && time.Now().After(c.tokenExp)
}

// errorBody is the backend's error envelope. Different endpoints use
// msg or error for the message field.
type errorBody struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

func (e errorBody) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Error != "" {
		return e.Error
	}
	return "The request could not be completed."
}

// Do issues one request and decodes the JSON response into out when out
// is non-nil. A 204 response leaves out untouched. Failures are
// normalized into *models.AppError values.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if observability.ExtractCorrelationID(ctx) == "" {
		ctx = observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())
	}
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return models.NewInternalError(fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-ID", observability.ExtractCorrelationID(ctx))
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.reqLog.LogRequest(ctx, method, path, 0, err)
		return models.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := decodeError(resp)
		c.reqLog.LogRequest(ctx, method, path, resp.StatusCode, appErr)
		return appErr
	}
	c.reqLog.LogRequest(ctx, method, path, resp.StatusCode, nil)

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return models.NewInternalError(fmt.Errorf("decode response body: %w", err))
	}
	return nil
}

// decodeError maps a non-2xx response into the client error taxonomy,
// carrying the server's message field when one is present.
func decodeError(resp *http.Response) *models.AppError {
	var envelope errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &envelope)
	msg := envelope.message()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return models.NewUnauthorizedError(msg)
	case http.StatusForbidden:
		return models.NewForbiddenError(msg)
	case http.StatusNotFound:
		return &models.AppError{Code: models.CodeNotFound, Message: msg}
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(msg), "already") {
			return models.NewConflictError(msg)
		}
		return models.NewValidationError(msg)
	default:
		return &models.AppError{
			Code:    models.CodeInternal,
			Message: msg,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}
