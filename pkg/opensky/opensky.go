// Package opensky provides a client for the OpenSky Network REST API
// and normalization of its positional state vectors.
//
// API Documentation: https://openskynetwork.github.io/opensky-api/rest.html
package opensky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skyward-dev/ifo/pkg/coordinates"
)

const (
	// BaseURL is the OpenSky Network REST API base URL
	BaseURL = "https://opensky-network.org/api"

	// DefaultTimeout for API requests
	DefaultTimeout = 10 * time.Second

	// userAgent identifies this tool per OpenSky's usage guidance
	userAgent = "IFO-CLI/1.0"
)

// Source is the interface an aircraft-area data provider implements.
// The orchestration layer depends on this, not on the HTTP client, so
// tests can substitute a fake provider.
type Source interface {
	// AircraftInArea returns all aircraft within a bounding box.
	AircraftInArea(ctx context.Context, box coordinates.BoundingBox) ([]Aircraft, error)
}

// Client is an HTTP client for the OpenSky /states/all endpoint.
type Client struct {
	// baseURL is the API base URL (default: BaseURL, custom for testing)
	baseURL string

	// httpClient bounds every request with its Timeout
	httpClient *http.Client
}

// NewClient creates an OpenSky API client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// statesResponse is the JSON shape of the /states/all endpoint. Each state
// is a fixed-position array of mixed types, decoded untyped and normalized
// by FromStateVector.
type statesResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}

// AircraftInArea queries all aircraft within a geographic bounding box.
//
// The box is validated before any network I/O; an invalid box (out of
// range or inverted) never reaches the wire. An empty result is a nil
// error with an empty slice. One malformed state vector fails the whole
// query: there is no partial-success mode.
func (c *Client) AircraftInArea(ctx context.Context, box coordinates.BoundingBox) ([]Aircraft, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lamin", formatDegrees(box.LatMin))
	params.Set("lomin", formatDegrees(box.LonMin))
	params.Set("lamax", formatDegrees(box.LatMax))
	params.Set("lomax", formatDegrees(box.LonMax))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/states/all?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var apiResp statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	aircraft := make([]Aircraft, 0, len(apiResp.States))
	for _, state := range apiResp.States {
		ac, err := FromStateVector(state)
		if err != nil {
			return nil, err
		}
		aircraft = append(aircraft, ac)
	}

	return aircraft, nil
}

// formatDegrees renders a bound without trailing float noise.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// APIError represents a non-success HTTP response from the OpenSky API.
// It is surfaced verbatim and never retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
}
