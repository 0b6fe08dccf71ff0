package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestGeocode tests place-name resolution against a fake upstream.
func TestGeocode(t *testing.T) {
	t.Run("Successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("Expected path /search, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			if got := q.Get("q"); got != "San Francisco" {
				t.Errorf("Expected q=San Francisco, got %s", got)
			}
			if got := q.Get("format"); got != "json" {
				t.Errorf("Expected format=json, got %s", got)
			}
			if got := q.Get("limit"); got != "1" {
				t.Errorf("Expected limit=1, got %s", got)
			}
			if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "IFO-CLI/1.0") {
				t.Errorf("Expected IFO-CLI User-Agent, got %s", ua)
			}
			w.Write([]byte(`[{"lat": "37.7790262", "lon": "-122.419906", "display_name": "San Francisco, California, United States"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		loc, err := client.Geocode(context.Background(), "San Francisco")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if loc == nil {
			t.Fatal("Expected location, got nil")
		}
		if loc.Latitude != 37.7790262 {
			t.Errorf("Expected latitude 37.7790262, got %f", loc.Latitude)
		}
		if loc.Longitude != -122.419906 {
			t.Errorf("Expected longitude -122.419906, got %f", loc.Longitude)
		}
		if loc.DisplayName != "San Francisco, California, United States" {
			t.Errorf("Unexpected display name: %s", loc.DisplayName)
		}
	})

	t.Run("No match is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		loc, err := client.Geocode(context.Background(), "xyzzy nowhere")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if loc != nil {
			t.Errorf("Expected nil location for no match, got %+v", loc)
		}
	})

	t.Run("Input constraints fail before any request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)

		for _, place := range []string{"", "   ", strings.Repeat("x", MaxPlaceLength+1)} {
			_, err := client.Geocode(context.Background(), place)
			if err == nil {
				t.Fatalf("Expected error for %q, got nil", place)
			}
			var placeErr *PlaceError
			if !errors.As(err, &placeErr) {
				t.Errorf("Expected PlaceError, got %T: %v", err, err)
			}
		}
		if requests != 0 {
			t.Errorf("Expected no requests for invalid names, got %d", requests)
		}
	})

	t.Run("Length limit counts characters not bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat": "35.68", "lon": "139.69", "display_name": "Tokyo, Japan"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)

		// 80 three-byte runes: 240 bytes but well under the 200-character cap.
		if _, err := client.Geocode(context.Background(), strings.Repeat("東", 80)); err != nil {
			t.Errorf("Expected 80-character name accepted, got: %v", err)
		}

		// 201 multibyte runes must still be rejected.
		_, err := client.Geocode(context.Background(), strings.Repeat("東", MaxPlaceLength+1))
		var placeErr *PlaceError
		if !errors.As(err, &placeErr) {
			t.Errorf("Expected PlaceError for over-long name, got %T: %v", err, err)
		}
	})

	t.Run("Surrounding whitespace is trimmed in the query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "London, UK" {
				t.Errorf("Expected trimmed q, got %q", got)
			}
			w.Write([]byte(`[{"lat": "51.5", "lon": "-0.1", "display_name": "London, UK"}]`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		if _, err := client.Geocode(context.Background(), "  London, UK  "); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("Malformed hit is a response error", func(t *testing.T) {
		bodies := []string{
			`[{"lon": "-122.4", "display_name": "Somewhere"}]`,
			`[{"lat": "37.7", "display_name": "Somewhere"}]`,
			`[{"lat": "37.7", "lon": "-122.4"}]`,
			`[{"lat": "not-a-number", "lon": "-122.4", "display_name": "Somewhere"}]`,
		}
		for _, body := range bodies {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))

			client := NewClient(server.URL, 0)
			_, err := client.Geocode(context.Background(), "Somewhere")
			server.Close()

			if err == nil {
				t.Fatalf("Expected error for body %s, got nil", body)
			}
			var respErr *ResponseError
			if !errors.As(err, &respErr) {
				t.Errorf("Expected ResponseError for body %s, got %T: %v", body, err, err)
			}
		}
	})

	t.Run("Non-success status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		if _, err := client.Geocode(context.Background(), "Paris"); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

// TestGeocodeRateLimit tests the 1 request per second politeness contract.
func TestGeocodeRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "48.85", "lon": "2.35", "display_name": "Paris, France"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)

	// First call should be immediate
	start := time.Now()
	if _, err := client.Geocode(context.Background(), "Paris"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("First call should be immediate, took %v", elapsed)
	}

	// Second call should be delayed to keep at most 1 req/sec
	start = time.Now()
	if _, err := client.Geocode(context.Background(), "Paris"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("Expected ~1s spacing, got %v", elapsed)
	}
}
