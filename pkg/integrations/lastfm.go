package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yair/concert-finder/pkg/domain"
)

type LastFMClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type LastFMConfig struct {
	APIKey string
}

func NewLastFMClient(config LastFMConfig, logger *slog.Logger) (*LastFMClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("last.fm: %w", domain.ErrMissingAPIKey)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LastFMClient{
		baseURL:    "http://ws.audioscrobbler.com/2.0",
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Last.fm asks for no more than 5 requests per second per client.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		logger:  logger,
	}, nil
}

type lastFMSimilarResponse struct {
	SimilarArtists struct {
		Artist []struct {
			Name  string `json:"name"`
			Match string `json:"match"`
		} `json:"artist"`
	} `json:"similarartists"`
}

type lastFMArtistInfoResponse struct {
	Artist struct {
		Name  string `json:"name"`
		Stats struct {
			Listeners string `json:"listeners"`
			Playcount string `json:"playcount"`
		} `json:"stats"`
	} `json:"artist"`
}

// GetSimilarArtists returns up to limit artist names related to the given
// artist, in the order Last.fm ranks them.
func (c *LastFMClient) GetSimilarArtists(ctx context.Context, artistName string, limit int) ([]string, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return nil, domain.ErrInvalidRequest
	}

	if limit <= 0 {
		limit = 5
	}
	if limit > 10 {
		limit = 10
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	similarURL := fmt.Sprintf("%s/?method=artist.getsimilar&artist=%s&api_key=%s&format=json&limit=%d",
		c.baseURL,
		url.QueryEscape(artistName),
		c.apiKey,
		limit,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", similarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create similar artists request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get similar artists: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("last.fm get similar failed: status %d", resp.StatusCode)
	}

	var similarResp lastFMSimilarResponse
	if err := json.NewDecoder(resp.Body).Decode(&similarResp); err != nil {
		return nil, fmt.Errorf("failed to decode similar artists response: %w", err)
	}

	names := make([]string, 0, len(similarResp.SimilarArtists.Artist))
	for _, artist := range similarResp.SimilarArtists.Artist {
		if artist.Name == "" {
			continue
		}
		names = append(names, artist.Name)
		if len(names) == limit {
			break
		}
	}

	return names, nil
}

// GetArtistPopularity returns the Last.fm listener count for an artist.
// An empty artist name returns 0 without a network call; a missing or
// malformed listener count reads as 0.
func (c *LastFMClient) GetArtistPopularity(ctx context.Context, artistName string) (int, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return 0, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait: %w", err)
	}

	infoURL := fmt.Sprintf("%s/?method=artist.getinfo&artist=%s&api_key=%s&format=json",
		c.baseURL,
		url.QueryEscape(artistName),
		c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", infoURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create artist info request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get artist info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, domain.ErrArtistNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("last.fm get artist failed: status %d", resp.StatusCode)
	}

	var infoResp lastFMArtistInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&infoResp); err != nil {
		return 0, fmt.Errorf("failed to decode artist info response: %w", err)
	}

	listeners, err := strconv.Atoi(infoResp.Artist.Stats.Listeners)
	if err != nil || listeners < 0 {
		c.logger.Debug("unparseable listener count",
			slog.String("artist", artistName),
			slog.String("listeners", infoResp.Artist.Stats.Listeners))
		return 0, nil
	}

	return listeners, nil
}
