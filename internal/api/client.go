// Package api implements the bearer-token JSON client for the PropelAuth API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/propelauth/cli/internal/messages"
)

// DefaultBaseURL is the fixed API host for all commands.
const DefaultBaseURL = "https://api.propelauth.com"

const userAgent = "propelauth-cli"

// ErrUnauthorized indicates the stored API key was rejected (HTTP 401).
// Callers surface this distinctly so login can re-prompt.
var ErrUnauthorized = errors.New(messages.APIUnauthorized)

// Project is one hosted project the authenticated user can manage.
type Project struct {
	OrgID       string `json:"org_id"`
	ProjectID   string `json:"project_id"`
	DisplayName string `json:"display_name"`
}

// BeIntegration holds a project's backend-integration settings. Updates
// replace the whole object; the API does not support partial updates.
type BeIntegration struct {
	AuthURL            string `json:"auth_url_origin"`
	VerifierKey        string `json:"verifier_key"`
	LoginRedirectPath  string `json:"login_redirect_path"`
	LogoutRedirectPath string `json:"logout_redirect_path"`
	TestEnv            string `json:"test_env"`
}

// APIKeyResult is the response to creating a backend API key.
type APIKeyResult struct {
	APIKey string `json:"api_key"`
}

// Client issues authenticated JSON requests to the PropelAuth API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the fixed API host.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a specific host. Tests use
// this with httptest servers.
func NewClientWithBaseURL(apiKey string, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Whoami validates the API key against the API.
func (c *Client) Whoami(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/cli/whoami", nil, nil)
}

// ListProjects fetches the projects available to the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var payload struct {
		Projects []Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/cli/projects", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Projects, nil
}

// FetchBeIntegration returns the current backend-integration settings.
func (c *Client) FetchBeIntegration(ctx context.Context, orgID string, projectID string) (*BeIntegration, error) {
	var out BeIntegration
	path := fmt.Sprintf("/cli/project/%s/%s/be-integration", orgID, projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBeIntegration replaces the backend-integration settings with the
// provided object.
func (c *Client) UpdateBeIntegration(ctx context.Context, orgID string, projectID string, settings BeIntegration) error {
	path := fmt.Sprintf("/cli/project/%s/%s/be-integration", orgID, projectID)
	return c.do(ctx, http.MethodPut, path, settings, nil)
}

// CreateAPIKey provisions a backend API key for the project.
func (c *Client) CreateAPIKey(ctx context.Context, orgID string, projectID string, name string) (*APIKeyResult, error) {
	var out APIKeyResult
	path := fmt.Sprintf("/cli/project/%s/%s/api-key", orgID, projectID)
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues one request. body, when non-nil, is encoded as JSON; out, when
// non-nil, receives the decoded response. HTTP 401 maps to ErrUnauthorized
// and HTTP 204 is a successful empty payload.
func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf(messages.APIEncodeRequestErrFmt, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf(messages.APICreateRequestErrFmt, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf(messages.APIRequestErrFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf(messages.APIUnexpectedStatusFmt, method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(messages.APIDecodeResponseErrFmt, err)
	}
	return nil
}
