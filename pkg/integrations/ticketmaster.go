package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yair/concert-finder/pkg/domain"
)

const defaultPageSize = 50

type TicketmasterClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type TicketmasterConfig struct {
	APIKey string // Ticketmaster Discovery API key
}

func NewTicketmasterClient(config TicketmasterConfig, logger *slog.Logger) (*TicketmasterClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("ticketmaster: %w", domain.ErrMissingAPIKey)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TicketmasterClient{
		baseURL:    "https://app.ticketmaster.com/discovery/v2",
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Discovery API allows 5 requests per second.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		logger:  logger,
	}, nil
}

// SearchQuery scopes one keyword query: where, how far, and when.
type SearchQuery struct {
	PostalCode string
	Radius     int // miles
	StartDate  time.Time
	EndDate    time.Time
	PageSize   int
}

type ticketmasterEventsResponse struct {
	Embedded struct {
		Events []domain.Event `json:"events"`
	} `json:"_embedded"`
	Page ticketmasterPage `json:"page"`
}

type ticketmasterPage struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// SearchEvents issues a single Discovery API query for one keyword, scoped to
// music events within the query's location and date window. Results arrive
// date-ascending from the API.
func (c *TicketmasterClient) SearchEvents(ctx context.Context, keyword string, query SearchQuery) ([]domain.Event, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	size := query.PageSize
	if size <= 0 || size > defaultPageSize {
		size = defaultPageSize
	}

	eventsURL := fmt.Sprintf("%s/events.json", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", eventsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("apikey", c.apiKey)
	q.Set("keyword", keyword)
	q.Set("postalCode", query.PostalCode)
	q.Set("radius", strconv.Itoa(query.Radius))
	q.Set("unit", "miles")
	q.Set("classificationName", "Music")
	q.Set("startDateTime", query.StartDate.UTC().Format("2006-01-02")+"T00:00:00Z")
	q.Set("endDateTime", query.EndDate.UTC().Format("2006-01-02")+"T23:59:59Z")
	q.Set("size", strconv.Itoa(size))
	q.Set("sort", "date,asc")
	req.URL.RawQuery = q.Encode()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrRateLimitExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketmaster search failed: status %d", resp.StatusCode)
	}

	var eventsResp ticketmasterEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&eventsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("ticketmaster search",
		slog.String("keyword", keyword),
		slog.Int("events", len(eventsResp.Embedded.Events)),
		slog.Duration("took", time.Since(start)))

	return eventsResp.Embedded.Events, nil
}
