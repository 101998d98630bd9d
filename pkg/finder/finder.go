package finder

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/yair/concert-finder/pkg/domain"
	"github.com/yair/concert-finder/pkg/integrations"
	"github.com/yair/concert-finder/pkg/observability"
)

// EventSearcher issues one event-discovery query per keyword.
type EventSearcher interface {
	SearchEvents(ctx context.Context, keyword string, query integrations.SearchQuery) ([]domain.Event, error)
}

// SimilarityProvider returns artists related to a seed artist.
type SimilarityProvider interface {
	GetSimilarArtists(ctx context.Context, artistName string, limit int) ([]string, error)
}

// Finder runs the search pipeline: expand the artist list, query events per
// term, rank, and format. The similarity and popularity providers may be nil;
// the features that need them degrade with a warning instead of failing the
// run.
type Finder struct {
	events       EventSearcher
	similarity   SimilarityProvider
	popularity   integrations.PopularityProvider
	similarLimit int
	clock        clockwork.Clock
	logger       *slog.Logger
	metrics      *observability.Metrics
}

type Config struct {
	SimilarArtistLimit int
	Clock              clockwork.Clock
	Logger             *slog.Logger
	Metrics            *observability.Metrics
}

func New(events EventSearcher, similarity SimilarityProvider, popularity integrations.PopularityProvider, cfg Config) *Finder {
	if cfg.SimilarArtistLimit <= 0 {
		cfg.SimilarArtistLimit = 5
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetricsForTesting()
	}
	return &Finder{
		events:       events,
		similarity:   similarity,
		popularity:   popularity,
		similarLimit: cfg.SimilarArtistLimit,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
	}
}

// Run executes one search. Stages are strictly sequential: expansion, then
// event search, then ranking, then formatting. Per-unit failures accumulate
// as warnings; only invalid criteria or a missing event API abort the run.
func (f *Finder) Run(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if f.events == nil {
		return nil, domain.ErrMissingAPIKey
	}

	f.metrics.SearchesTotal.Inc()
	start := f.clock.Now()

	result := &domain.SearchResult{
		SimilarArtists: make(map[string][]string),
	}

	artists := criteria.Artists
	if criteria.IncludeSimilar && len(artists) > 0 {
		artists = f.expandArtists(ctx, artists, result)
	}
	result.SearchedArtists = artists

	events := f.search(ctx, artists, criteria, result)

	if criteria.SortMode == domain.SortByPopularity {
		f.rankByPopularity(ctx, events, result)
	}

	result.Events = make([]domain.FormattedEvent, 0, len(events))
	for _, ev := range events {
		result.Events = append(result.Events, Format(ev))
	}
	result.Total = len(result.Events)

	took := f.clock.Since(start)
	f.metrics.SearchDuration.Observe(took.Seconds())
	f.metrics.EventsReturned.Observe(float64(result.Total))
	f.logger.Info("search complete",
		slog.Int("terms", len(artists)+len(criteria.Genres)),
		slog.Int("events", result.Total),
		slog.Int("warnings", len(result.Warnings)),
		slog.Duration("took", took))

	return result, nil
}
