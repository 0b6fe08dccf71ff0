package opensky

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skyward-dev/ifo/pkg/coordinates"
)

func testBox() coordinates.BoundingBox {
	return coordinates.BoundingBox{LatMin: 37.2, LonMin: -122.9, LatMax: 38.2, LonMax: -121.9}
}

// TestNewClient tests client construction defaults.
func TestNewClient(t *testing.T) {
	client := NewClient("", 0)

	if client.baseURL != BaseURL {
		t.Errorf("Expected default base URL %s, got %s", BaseURL, client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}

	custom := NewClient("https://api.test.com", 5*time.Second)
	if custom.baseURL != "https://api.test.com" {
		t.Errorf("Expected baseURL https://api.test.com, got %s", custom.baseURL)
	}
	if custom.httpClient.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", custom.httpClient.Timeout)
	}
}

// TestAircraftInArea tests the area query against a fake upstream.
func TestAircraftInArea(t *testing.T) {
	t.Run("Maps box bounds to query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/states/all" {
				t.Errorf("Expected path /states/all, got %s", r.URL.Path)
			}
			q := r.URL.Query()
			for param, want := range map[string]string{
				"lamin": "37.2",
				"lomin": "-122.9",
				"lamax": "38.2",
				"lomax": "-121.9",
			} {
				if got := q.Get(param); got != want {
					t.Errorf("Expected %s=%s, got %s", param, want, got)
				}
			}
			if ua := r.Header.Get("User-Agent"); ua != "IFO-CLI/1.0" {
				t.Errorf("Expected User-Agent IFO-CLI/1.0, got %s", ua)
			}
			json.NewEncoder(w).Encode(map[string]any{"time": 1700000000, "states": [][]any{}})
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		aircraft, err := client.AircraftInArea(context.Background(), testBox())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 0 {
			t.Errorf("Expected 0 aircraft, got %d", len(aircraft))
		}
	})

	t.Run("Parses state vectors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"time": 1700000000,
				"states": [
					["a808c5", "UAL123  ", "United States", 1700000000, 1700000002,
					 -122.39, 37.62, 3200.5, false, 220.4, 270.0, -4.5, null, 3300.0, "7421", false, 0],
					["4b1805", null, "Switzerland", null, 1700000001,
					 null, null, null, true, 0.0, null, null, null, null, null, false, 0]
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		aircraft, err := client.AircraftInArea(context.Background(), testBox())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 2 {
			t.Fatalf("Expected 2 aircraft, got %d", len(aircraft))
		}

		first := aircraft[0]
		if first.ICAO24 != "a808c5" {
			t.Errorf("Expected ICAO24 a808c5, got %s", first.ICAO24)
		}
		if first.Callsign == nil || *first.Callsign != "UAL123" {
			t.Errorf("Expected callsign UAL123, got %v", first.Callsign)
		}
		if first.BaroAltitude == nil || *first.BaroAltitude != 3200.5 {
			t.Errorf("Expected baro altitude 3200.5, got %v", first.BaroAltitude)
		}

		second := aircraft[1]
		if second.Callsign != nil {
			t.Errorf("Expected absent callsign, got %v", *second.Callsign)
		}
		if !second.OnGround {
			t.Error("Expected OnGround true")
		}
		if second.Velocity == nil || *second.Velocity != 0.0 {
			t.Errorf("Expected reported zero velocity, got %v", second.Velocity)
		}
		if second.BaroAltitude != nil {
			t.Errorf("Expected absent altitude, got %v", *second.BaroAltitude)
		}
	})

	t.Run("Null states means empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"time": 1700000000, "states": null}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		aircraft, err := client.AircraftInArea(context.Background(), testBox())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(aircraft) != 0 {
			t.Errorf("Expected 0 aircraft, got %d", len(aircraft))
		}
	})

	t.Run("One short vector fails the whole query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"time": 1700000000,
				"states": [
					["a808c5", "UAL123", "United States", null, null,
					 -122.39, 37.62, 3200.5, false, 220.4, 270.0, -4.5, null, 3300.0, null, false, 0],
					["4b1805", "SWR9"]
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		_, err := client.AircraftInArea(context.Background(), testBox())
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		var svErr *StateVectorError
		if !errors.As(err, &svErr) {
			t.Fatalf("Expected StateVectorError, got %T: %v", err, err)
		}
		if svErr.Got != 2 {
			t.Errorf("Expected actual count 2, got %d", svErr.Got)
		}
	})

	t.Run("Non-success status is an API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		_, err := client.AircraftInArea(context.Background(), testBox())
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Expected APIError, got %T: %v", err, err)
		}
		if apiErr.StatusCode != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", apiErr.StatusCode)
		}
	})

	t.Run("Invalid box fails before any request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		client := NewClient(server.URL, 0)
		degenerate := coordinates.BoundingBox{LatMin: 37.7, LonMin: -122.4, LatMax: 37.7, LonMax: -122.4}
		_, err := client.AircraftInArea(context.Background(), degenerate)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if requests != 0 {
			t.Errorf("Expected no requests for invalid box, got %d", requests)
		}
	})
}
