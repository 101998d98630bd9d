package integrations

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yair/concert-finder/pkg/domain"
)

func newTestLastFMClient(baseURL string) *LastFMClient {
	return &LastFMClient{
		baseURL:    baseURL,
		apiKey:     "test-api-key",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     slog.Default(),
	}
}

func TestNewLastFMClient(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		client, err := NewLastFMClient(LastFMConfig{APIKey: "key"}, nil)
		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewLastFMClient(LastFMConfig{}, nil)
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	})
}

func TestLastFMClient_GetSimilarArtists(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("method") != "artist.getsimilar" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"similarartists": {"artist": [
			{"name": "Thom Yorke", "match": "1.0"},
			{"name": "Atoms for Peace", "match": "0.8"},
			{"name": "Portishead", "match": "0.6"}
		]}}`))
	}))
	defer mockServer.Close()

	client := newTestLastFMClient(mockServer.URL)

	t.Run("returns ordered names", func(t *testing.T) {
		artists, err := client.GetSimilarArtists(context.Background(), "Radiohead", 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"Thom Yorke", "Atoms for Peace", "Portishead"}, artists)
	})

	t.Run("caps at limit", func(t *testing.T) {
		artists, err := client.GetSimilarArtists(context.Background(), "Radiohead", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Thom Yorke", "Atoms for Peace"}, artists)
	})

	t.Run("blank artist is rejected", func(t *testing.T) {
		_, err := client.GetSimilarArtists(context.Background(), "  ", 5)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("server failure is an error", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		_, err := newTestLastFMClient(broken.URL).GetSimilarArtists(context.Background(), "Radiohead", 5)
		assert.ErrorContains(t, err, "status 502")
	})
}

func TestLastFMClient_GetArtistPopularity(t *testing.T) {
	t.Run("parses listener count", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("method") != "artist.getinfo" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"artist": {"name": "Radiohead", "stats": {"listeners": "5123456", "playcount": "900000000"}}}`))
		}))
		defer mockServer.Close()

		listeners, err := newTestLastFMClient(mockServer.URL).GetArtistPopularity(context.Background(), "Radiohead")
		require.NoError(t, err)
		assert.Equal(t, 5123456, listeners)
	})

	t.Run("malformed listener count reads as zero", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"artist": {"stats": {"listeners": "many"}}}`))
		}))
		defer mockServer.Close()

		listeners, err := newTestLastFMClient(mockServer.URL).GetArtistPopularity(context.Background(), "Radiohead")
		require.NoError(t, err)
		assert.Zero(t, listeners)
	})

	t.Run("missing stats reads as zero", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"artist": {"name": "Radiohead"}}`))
		}))
		defer mockServer.Close()

		listeners, err := newTestLastFMClient(mockServer.URL).GetArtistPopularity(context.Background(), "Radiohead")
		require.NoError(t, err)
		assert.Zero(t, listeners)
	})

	t.Run("empty artist returns zero without a call", func(t *testing.T) {
		called := false
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer mockServer.Close()

		listeners, err := newTestLastFMClient(mockServer.URL).GetArtistPopularity(context.Background(), "  ")
		require.NoError(t, err)
		assert.Zero(t, listeners)
		assert.False(t, called)
	})

	t.Run("not found", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer mockServer.Close()

		_, err := newTestLastFMClient(mockServer.URL).GetArtistPopularity(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrArtistNotFound)
	})
}
