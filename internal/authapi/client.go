// Package authapi is the remote authentication collaborator boundary.
// The endpoint is assumed to exchange credentials for a bearer token and
// expiry; this package owns no retry or offline-queue logic.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrLoginFailed indicates the endpoint rejected the credentials.
var ErrLoginFailed = errors.New("login failed")

// Token is a bearer token returned by the remote endpoint. Expiry is the
// server's concern; the local session never checks it.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Client exchanges credentials for a token.
type Client interface {
	Login(ctx context.Context, email, password string) (Token, error)
}

// HTTPClient talks to a JSON login endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the auth service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// Login implements Client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (Token, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return Token{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/login", bytes.NewReader(body))
	if err != nil {
		return Token{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Token{}, ErrLoginFailed
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return Token{}, fmt.Errorf("auth endpoint returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Token{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Token == "" {
		return Token{}, fmt.Errorf("auth endpoint returned no token")
	}

	return Token{
		Value:     result.Token,
		ExpiresAt: time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}, nil
}
