package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"salva-iguaba-api/internal/config"
)

// IdentityClient talks to the external users service that owns OAuth
// redirects and session tokens. Sessions are opaque to this API; every
// authenticated request is resolved against the service.
type IdentityClient interface {
	OAuthRedirectURL(ctx context.Context, provider string) (string, error)
	ExchangeCodeForSession(ctx context.Context, code string) (string, error)
	GetSessionUser(ctx context.Context, sessionToken string) (*User, error)
	DeleteSession(ctx context.Context, sessionToken string) error
}

type identityClientImpl struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewIdentityClient(cfg *config.Auth) IdentityClient {
	return &identityClientImpl{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		apiURL: cfg.ApiURL,
		apiKey: cfg.ApiKey,
	}
}

func (c *identityClientImpl) doJSON(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("users service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("users service error %d: %s", resp.StatusCode, string(b))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode users service response: %w", err)
		}
	}

	return nil
}

func (c *identityClientImpl) OAuthRedirectURL(ctx context.Context, provider string) (string, error) {
	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	path := fmt.Sprintf("/oauth/%s/redirect_url", provider)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}

func (c *identityClientImpl) ExchangeCodeForSession(ctx context.Context, code string) (string, error) {
	var out struct {
		SessionToken string `json:"session_token"`
	}
	body := map[string]string{"code": code}
	if err := c.doJSON(ctx, http.MethodPost, "/sessions", body, &out, nil); err != nil {
		return "", err
	}
	return out.SessionToken, nil
}

func (c *identityClientImpl) GetSessionUser(ctx context.Context, sessionToken string) (*User, error) {
	var out User
	headers := map[string]string{"Authorization": "Bearer " + sessionToken}
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *identityClientImpl) DeleteSession(ctx context.Context, sessionToken string) error {
	headers := map[string]string{"Authorization": "Bearer " + sessionToken}
	return c.doJSON(ctx, http.MethodDelete, "/sessions/current", nil, nil, headers)
}
