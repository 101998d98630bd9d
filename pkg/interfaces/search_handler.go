package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yair/concert-finder/pkg/domain"
)

// SearchService runs one search pipeline invocation.
type SearchService interface {
	Run(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error)
}

type SearchHandler struct {
	finder SearchService
	logger *slog.Logger
}

func NewSearchHandler(finder SearchService, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		finder: finder,
		logger: logger,
	}
}

func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/search", h.Search).Methods("POST")
	router.HandleFunc("/api/search/options", h.Options).Methods("GET")
}

type SearchResponse struct {
	SearchID string `json:"search_id"`
	*domain.SearchResult
	Message string `json:"message,omitempty"`
}

type OptionsResponse struct {
	RadiusMiles    []int `json:"radius_miles"`
	DateWindowDays []int `json:"date_window_days"`
	MaxArtists     int   `json:"max_artists"`
	MaxGenres      int   `json:"max_genres"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	searchID := uuid.NewString()

	var criteria domain.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	start := time.Now()
	result, err := h.finder.Run(r.Context(), criteria)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingAPIKey):
			h.writeErrorResponse(w, http.StatusServiceUnavailable, "event search is not configured: missing Ticketmaster API key")
		case errors.Is(err, domain.ErrNoSearchTerms), errors.Is(err, domain.ErrInvalidRequest):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("search failed",
				slog.String("search_id", searchID),
				slog.String("error", err.Error()))
			h.writeErrorResponse(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	h.logger.Info("search served",
		slog.String("search_id", searchID),
		slog.Int("events", result.Total),
		slog.Duration("took", time.Since(start)))

	response := SearchResponse{
		SearchID:     searchID,
		SearchResult: result,
	}
	if result.Total == 0 {
		response.Message = "no concerts found matching your criteria; try a wider date range or more artists and genres"
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *SearchHandler) Options(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, OptionsResponse{
		RadiusMiles:    domain.RadiusOptions,
		DateWindowDays: domain.DateWindowOptions,
		MaxArtists:     domain.MaxArtists,
		MaxGenres:      domain.MaxGenres,
	})
}

func (h *SearchHandler) writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	w.Write(encoded)
}

func (h *SearchHandler) writeErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  message,
		Status: status,
	})
}
