// Package api is the HTTP client for the events backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

type apiErrorPayload struct {
	Message string `json:"message"`
}

// Client talks to the events REST API. The token is optional; endpoints that
// require auth fail with a 401 APIError when it is missing.
type Client struct {
	baseURL    string
	token      string
	installID  string
	httpClient *http.Client
}

// NewClient constructs an API client for the given base URL.
func NewClient(baseURL, token string) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		token:   token,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// SetToken replaces the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetInstallID attaches a per-device identifier sent with every request.
func (c *Client) SetInstallID(id string) {
	c.installID = id
}

// NormalizeBaseURL normalizes a backend base URL and ensures it has a scheme.
func NormalizeBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("base url cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("base url must include scheme (https://)")
	}
	value = strings.TrimRight(value, "/")
	return value, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, headers map[string]string, reqBody any, respBody any) error {
	endpoint, err := c.buildURL(path)
	if err != nil {
		return err
	}

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.installID != "" {
		req.Header.Set("X-Install-ID", c.installID)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload apiErrorPayload
		if err := json.Unmarshal(respData, &payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respData))
		}
		return apiErr
	}

	if respBody == nil {
		return nil
	}
	if len(respData) == 0 {
		return nil
	}
	return json.Unmarshal(respData, respBody)
}

func (c *Client) buildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
