// Package geocode provides a client for the Nominatim (OpenStreetMap)
// geocoding service, resolving free-text place names to coordinates.
//
// Usage policy: https://operations.osmfoundation.org/policies/nominatim/
// Rate limit: 1 request per second, User-Agent required.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the public Nominatim instance
	BaseURL = "https://nominatim.openstreetmap.org"

	// DefaultTimeout for geocoding requests
	DefaultTimeout = 10 * time.Second

	// MaxPlaceLength is the longest accepted place name, in characters
	MaxPlaceLength = 200

	// userAgent identifies this tool per the Nominatim usage policy
	userAgent = "IFO-CLI/1.0 (Aircraft tracking tool)"
)

// Location is a geocoding result.
type Location struct {
	// Latitude in decimal degrees
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees
	Longitude float64 `json:"longitude"`

	// DisplayName is the service's canonical name for the match
	DisplayName string `json:"display_name"`
}

// Geocoder resolves a place name to a location. A nil result with a nil
// error means the service had no match, which is a normal outcome rather
// than a failure.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*Location, error)
}

// Client is an HTTP client for the Nominatim search endpoint.
type Client struct {
	// baseURL is the API base URL (default: BaseURL, custom for testing)
	baseURL string

	// httpClient bounds every request with its Timeout
	httpClient *http.Client

	// limiter serializes callers to at most 1 request per second, per
	// the Nominatim usage policy
	limiter *rate.Limiter
}

// NewClient creates a Nominatim client. A zero timeout falls back to
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
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// nominatimResult is one search hit. Nominatim serializes coordinates as
// strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a place name to coordinates.
//
// Empty, whitespace-only or over-long names fail with *PlaceError before
// any network I/O. A response with no matches returns (nil, nil). A hit
// missing its expected fields fails with *ResponseError.
func (c *Client) Geocode(ctx context.Context, place string) (*Location, error) {
	trimmed := strings.TrimSpace(place)
	if trimmed == "" {
		return nil, &PlaceError{Reason: "place name cannot be empty"}
	}
	// Characters, not bytes: multibyte place names count by rune.
	if utf8.RuneCountInString(place) > MaxPlaceLength {
		return nil, &PlaceError{Reason: fmt.Sprintf("place name too long (max %d characters)", MaxPlaceLength)}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	hit := results[0]
	if hit.Lat == "" || hit.Lon == "" || hit.DisplayName == "" {
		return nil, &ResponseError{Service: "nominatim"}
	}

	lat, err := strconv.ParseFloat(hit.Lat, 64)
	if err != nil {
		return nil, &ResponseError{Service: "nominatim"}
	}
	lon, err := strconv.ParseFloat(hit.Lon, 64)
	if err != nil {
		return nil, &ResponseError{Service: "nominatim"}
	}

	return &Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: hit.DisplayName,
	}, nil
}

// PlaceError indicates a caller-supplied place name that violates the
// service's input constraints. Detected before any network call.
type PlaceError struct {
	Reason string
}

func (e *PlaceError) Error() string {
	return e.Reason
}

// ResponseError indicates a structurally malformed response from the
// geocoding service (expected fields missing or unparseable).
type ResponseError struct {
	Service string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response format from %s", e.Service)
}
