// Package config loads application configuration from a JSON file with
// environment-variable overrides. A missing file yields the defaults, so
// the tools run with zero setup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration.
type Config struct {
	OpenSky   OpenSkyConfig   `json:"opensky"`
	Nominatim NominatimConfig `json:"nominatim"`
	Search    SearchConfig    `json:"search"`
	Server    ServerConfig    `json:"server"`
	Log       LogConfig       `json:"log"`
}

// OpenSkyConfig contains the aircraft-state feed settings.
type OpenSkyConfig struct {
	// BaseURL is the OpenSky API base URL
	BaseURL string `json:"base_url"`

	// TimeoutSeconds is the request timeout in seconds
	TimeoutSeconds int `json:"timeout_seconds"`
}

// NominatimConfig contains the geocoding service settings.
type NominatimConfig struct {
	// BaseURL is the Nominatim instance base URL
	BaseURL string `json:"base_url"`

	// TimeoutSeconds is the request timeout in seconds
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SearchConfig contains query defaults.
type SearchConfig struct {
	// RadiusDeg is the default half-width of the query box in degrees
	// (0.5° is roughly 55 km at the equator)
	RadiusDeg float64 `json:"radius_deg"`
}

// ServerConfig contains HTTP server configuration for ifo-server.
type ServerConfig struct {
	// Host is the server bind address (default: "0.0.0.0")
	Host string `json:"host"`

	// Port is the HTTP server port (default: 8080)
	Port string `json:"port"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the logrus level name (debug, info, warn, error)
	Level string `json:"level"`
}

// Load reads configuration from a JSON file. If a .env file exists in the
// working directory it is loaded first, then the config file, then
// environment-variable overrides. A missing config file returns the
// default configuration.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Save writes the configuration to a JSON file, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OpenSky: OpenSkyConfig{
			BaseURL:        "https://opensky-network.org/api",
			TimeoutSeconds: 10,
		},
		Nominatim: NominatimConfig{
			BaseURL:        "https://nominatim.openstreetmap.org",
			TimeoutSeconds: 10,
		},
		Search: SearchConfig{
			RadiusDeg: 0.5,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyEnvironmentOverrides applies IFO_* environment variables on top of
// the loaded configuration.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv("IFO_OPENSKY_URL"); v != "" {
		c.OpenSky.BaseURL = v
	}
	if v := os.Getenv("IFO_NOMINATIM_URL"); v != "" {
		c.Nominatim.BaseURL = v
	}
	if v := os.Getenv("IFO_RADIUS_DEG"); v != "" {
		if radius, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.RadiusDeg = radius
		}
	}
	if v := os.Getenv("IFO_SERVER_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("IFO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
