// Package rest implements session.IdentityProvider against the POS backend
// HTTP API. It maps transport and status failures onto the session error
// taxonomy; retry policy is deliberately left to callers.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	session "github.com/tillworks/go-session"
)

const (
	pathCurrentUser = "/auth/me"
	pathBusiness    = "/auth/business"
	pathLogin       = "/auth/login"
)

// Provider calls the POS backend identity endpoints.
type Provider struct {
	config     Config
	httpClient *http.Client
	logger     session.Logger
}

var _ session.IdentityProvider = (*Provider)(nil)

// New creates a new identity provider client.
func New(cfg Config) *Provider {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Provider{
		config:     cfg,
		httpClient: client,
		logger:     session.DefaultLogger(),
	}
}

func (p *Provider) WithLogger(logger session.Logger) *Provider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// GetCurrentUser implements session.IdentityProvider.
func (p *Provider) GetCurrentUser(ctx context.Context, credential string) (*session.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(pathCurrentUser), nil)
	if err != nil {
		return nil, p.transient("get current user", err)
	}
	p.setHeaders(req, credential)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.transient("get current user", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user session.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, p.transient("get current user", err)
		}
		return &user, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, session.ErrAuthenticationRejected.WithMetadata(map[string]any{
			"status": resp.StatusCode,
		})
	default:
		return nil, p.transientStatus("get current user", resp.StatusCode)
	}
}

// GetBusinessProfile implements session.IdentityProvider.
func (p *Provider) GetBusinessProfile(ctx context.Context, credential string) (*session.Business, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(pathBusiness), nil)
	if err != nil {
		return nil, p.transient("get business profile", err)
	}
	p.setHeaders(req, credential)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.transient("get business profile", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var business session.Business
		if err := json.NewDecoder(resp.Body).Decode(&business); err != nil {
			return nil, p.transient("get business profile", err)
		}
		return &business, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, session.ErrAuthenticationRejected.WithMetadata(map[string]any{
			"status": resp.StatusCode,
		})
	default:
		return nil, p.transientStatus("get business profile", resp.StatusCode)
	}
}

// Login implements session.IdentityProvider.
func (p *Provider) Login(ctx context.Context, loginReq session.LoginRequest) (*session.LoginResult, error) {
	payload, err := json.Marshal(loginReq)
	if err != nil {
		return nil, session.ErrServerError.WithMetadata(map[string]any{
			"error": err.Error(),
		})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(pathLogin), bytes.NewReader(payload))
	if err != nil {
		return nil, session.ErrServerError.WithMetadata(map[string]any{
			"error": err.Error(),
		})
	}
	p.setHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("login request failed: %v", err)
		return nil, session.ErrServerError.WithMetadata(map[string]any{
			"error": err.Error(),
		})
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result session.LoginResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, session.ErrServerError.WithMetadata(map[string]any{
				"error": err.Error(),
			})
		}
		return &result, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, session.ErrInvalidCredentials.WithMetadata(map[string]any{
			"status": resp.StatusCode,
		})
	case http.StatusNotFound:
		return nil, session.ErrUnknownTenant.WithMetadata(map[string]any{
			"status": resp.StatusCode,
			"tenant": loginReq.TenantSubdomain,
		})
	case http.StatusTooManyRequests:
		return nil, session.ErrRateLimited.WithMetadata(map[string]any{
			"status": resp.StatusCode,
		})
	default:
		return nil, session.ErrServerError.WithMetadata(map[string]any{
			"status": resp.StatusCode,
		})
	}
}

func (p *Provider) endpoint(path string) string {
	return strings.TrimRight(p.config.BaseURL, "/") + path
}

func (p *Provider) setHeaders(req *http.Request, credential string) {
	req.Header.Set("Accept", "application/json")
	if p.config.UserAgent != "" {
		req.Header.Set("User-Agent", p.config.UserAgent)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
}

func (p *Provider) transient(operation string, err error) error {
	p.logger.Warn("%s failed: %v", operation, err)
	return session.ErrTransientFailure.WithMetadata(map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
}

func (p *Provider) transientStatus(operation string, status int) error {
	p.logger.Warn("%s failed with status %d", operation, status)
	return session.ErrTransientFailure.WithMetadata(map[string]any{
		"operation": operation,
		"status":    status,
		"error":     fmt.Sprintf("unexpected status %d", status),
	})
}
