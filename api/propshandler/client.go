package propshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ruteri/pixelprops/api"
	"github.com/ruteri/pixelprops/interfaces"
)

// Client talks to a remote override daemon.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

var _ api.OverrideProvider = (*Client)(nil)

// NewClient creates a client for the daemon at baseURL using
// http.DefaultClient.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// Apply requests the overrides selected for packageName.
func (c *Client) Apply(ctx context.Context, packageName string) (*api.ApplyResponse, error) {
	var resp api.ApplyResponse
	path := "/api/v1/apply/" + url.PathEscape(packageName)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GuardCertificateChain checks a certificate chain request made with frames.
// A refusal is reported as interfaces.ErrUnsupportedOperation.
func (c *Client) GuardCertificateChain(ctx context.Context, frames []interfaces.Frame) error {
	body, err := json.Marshal(api.GuardRequest{Frames: frames})
	if err != nil {
		return fmt.Errorf("could not encode guard request: %w", err)
	}
	var resp api.GuardResponse
	return c.do(ctx, http.MethodPost, "/api/v1/guard/certificate-chain", body, &resp)
}

// Record fetches the daemon's current build record.
func (c *Client) Record(ctx context.Context) (map[string]string, error) {
	var resp api.RecordResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/record", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// State fetches the impersonation latch.
func (c *Client) State(ctx context.Context) (bool, error) {
	var resp api.StateResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/state", nil, &resp); err != nil {
		return false, err
	}
	return resp.SpoofLatched, nil
}

// Profiles fetches the daemon's profile table.
func (c *Client) Profiles(ctx context.Context) (*api.ProfilesResponse, error) {
	var resp api.ProfilesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/profiles", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("could not initialize request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read %s response: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return interfaces.ErrUnsupportedOperation
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("could not parse %s response: %w", path, err)
	}
	return nil
}
