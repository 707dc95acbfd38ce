// Package videoapi provides client functionality for the video download service API
package videoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"video-downloader/pkg/models"
)

const (
	// DefaultBaseURL is the base URL of a locally running download service
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request, matching the client download timeout
	DefaultTimeout = 60 * time.Second
)

// Client represents a video download service client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// VideoService defines the interface for remote download service operations
//
//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks
type VideoService interface {
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadOutcome, error)
	SupportedPlatforms(ctx context.Context) ([]string, error)
	CheckHealth(ctx context.Context) error
}

type platformsResponse struct {
	Platforms []string `json:"platforms"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// New creates a new client for the service at baseURL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Download asks the service to fetch the video described by req. A negative
// business result is returned as an outcome with Success false; only calls
// that cannot complete return an error.
func (c *Client) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadOutcome, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var outcome models.DownloadOutcome
	if err := c.doJSON(ctx, http.MethodPost, "/api/download", body, &outcome); err != nil {
		return nil, err
	}

	outcome.Normalize()
	return &outcome, nil
}

// SupportedPlatforms returns the display names the service reports. A nil
// slice means the response carried no list.
func (c *Client) SupportedPlatforms(ctx context.Context) ([]string, error) {
	var resp platformsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/supported_platforms", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Platforms, nil
}

// CheckHealth verifies the service is up
func (c *Client) CheckHealth(ctx context.Context) error {
	var resp healthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}

	if resp.Status != "healthy" {
		return fmt.Errorf("service reported status: %q", resp.Status)
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewTransportError("failed to make request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &models.TransportError{
			Detail: fmt.Sprintf("API request failed with status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewTransportError("failed to decode response", err)
	}

	return nil
}

// NewTransportError wraps err as a transport error. Timeouts are tagged so
// that their detail text always mentions "timeout".
func NewTransportError(action string, err error) *models.TransportError {
	if IsTimeout(err) {
		return &models.TransportError{
			Detail:  fmt.Sprintf("request timeout: %s: %v", action, err),
			Timeout: true,
		}
	}

	return &models.TransportError{Detail: fmt.Sprintf("%s: %v", action, err)}
}

// IsTimeout reports whether err was caused by a deadline or network timeout
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
