package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `json:"server"`
	APIs   APIConfig    `json:"apis"`
	Cache  CacheConfig  `json:"cache"`
	Search SearchConfig `json:"search"`
}

// ServerConfig for HTTP server settings
type ServerConfig struct {
	Port         string `json:"port" env:"CONCERTFINDER_SERVER_PORT"`
	ReadTimeout  int    `json:"read_timeout_seconds" env:"CONCERTFINDER_SERVER_READ_TIMEOUT"`
	WriteTimeout int    `json:"write_timeout_seconds" env:"CONCERTFINDER_SERVER_WRITE_TIMEOUT"`
}

// APIConfig holds the external API credentials. Either key may be absent:
// a missing Ticketmaster key disables event search, a missing Last.fm key
// disables similar-artist expansion and popularity ranking.
type APIConfig struct {
	Ticketmaster TicketmasterConfig `json:"ticketmaster"`
	LastFM       LastFMConfig       `json:"lastfm"`
}

// TicketmasterConfig for the Ticketmaster Discovery API
type TicketmasterConfig struct {
	APIKey string `json:"api_key" env:"CONCERTFINDER_TICKETMASTER_API_KEY"`
}

// LastFMConfig for the Last.fm API
type LastFMConfig struct {
	APIKey string `json:"api_key" env:"CONCERTFINDER_LASTFM_API_KEY"`
}

// CacheConfig for the popularity cache
type CacheConfig struct {
	PopularityTTLMinutes int `json:"popularity_ttl_minutes" env:"CONCERTFINDER_POPULARITY_TTL_MINUTES"`
}

// SearchConfig for pipeline tuning
type SearchConfig struct {
	SimilarArtistLimit int `json:"similar_artist_limit" env:"CONCERTFINDER_SIMILAR_ARTIST_LIMIT"`
}

// Load reads configuration from an optional JSON file, applies defaults, and
// overrides with environment variables.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(config)

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30
	}
	if config.Cache.PopularityTTLMinutes == 0 {
		config.Cache.PopularityTTLMinutes = 60
	}
	if config.Search.SimilarArtistLimit == 0 {
		config.Search.SimilarArtistLimit = 5
	}
}

// Validate checks tunable values for sanity. Missing API keys are not an
// error here; the affected component degrades at request time instead.
func (c *Config) Validate() error {
	var invalid []string

	if c.Server.ReadTimeout < 0 {
		invalid = append(invalid, "server.read_timeout_seconds")
	}
	if c.Server.WriteTimeout < 0 {
		invalid = append(invalid, "server.write_timeout_seconds")
	}
	if c.Cache.PopularityTTLMinutes < 0 {
		invalid = append(invalid, "cache.popularity_ttl_minutes")
	}
	if c.Search.SimilarArtistLimit < 0 {
		invalid = append(invalid, "search.similar_artist_limit")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}
	return nil
}
