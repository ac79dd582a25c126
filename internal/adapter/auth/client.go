// Package auth verifies bearer credentials against the external identity
// service.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized means the credential is missing, malformed, or rejected
// by the identity service.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier resolves a bearer token to a user ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Client is the identity service client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new identity service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements Verifier interface.
var _ Verifier = (*Client)(nil)

type verifyResponse struct {
	UserID string `json:"user_id"`
}

// Verify asks the identity service to resolve the token. A 401/403 from
// the service maps to ErrUnauthorized; anything else unexpected is an
// internal failure.
func (c *Client) Verify(ctx context.Context, token string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/verify", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("identity service error [%d]: %s", resp.StatusCode, string(body))
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode verify response: %w", err)
	}
	if result.UserID == "" {
		return "", fmt.Errorf("identity service returned empty user_id")
	}
	return result.UserID, nil
}

// StaticVerifier maps fixed tokens to user IDs. Used for local
// development and tests when no identity service is configured.
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier creates a verifier from a token -> user ID map.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// Ensure StaticVerifier implements Verifier interface.
var _ Verifier = (*StaticVerifier)(nil)

// Verify resolves the token against the static map.
func (v *StaticVerifier) Verify(ctx context.Context, token string) (string, error) {
	if userID, ok := v.tokens[token]; ok {
		return userID, nil
	}
	return "", ErrUnauthorized
}
