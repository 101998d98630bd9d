package finder

import (
	"context"
	"log/slog"
	"sort"

	"github.com/yair/concert-finder/pkg/domain"
)

// rankByPopularity annotates every event with its primary artist's listener
// count and sorts descending. The sort is stable: events with equal
// popularity keep their date order from the search step.
func (f *Finder) rankByPopularity(ctx context.Context, events []domain.Event, result *domain.SearchResult) {
	if f.popularity == nil {
		if len(events) > 0 {
			result.Warnings = append(result.Warnings, "popularity ranking is not configured; results keep their date order")
			f.logger.Warn("popularity provider not configured, skipping ranking")
		}
		return
	}

	for i := range events {
		artist := ExtractPrimaryArtist(events[i])
		if artist == "" {
			continue
		}
		listeners, err := f.popularity.GetArtistPopularity(ctx, artist)
		if err != nil {
			f.metrics.APIRequests.WithLabelValues("lastfm", "error").Inc()
			f.logger.Warn("popularity lookup failed",
				slog.String("artist", artist),
				slog.String("error", err.Error()))
			continue
		}
		f.metrics.APIRequests.WithLabelValues("lastfm", "success").Inc()
		events[i].Popularity = listeners
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Popularity > events[j].Popularity
	})
}
