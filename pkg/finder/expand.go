package finder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yair/concert-finder/pkg/domain"
)

// expandArtists grows the seed list with related artists. Names already in
// the working list are skipped with a case-insensitive comparison, and each
// seed's discoveries are recorded in result.SimilarArtists. A failed lookup
// for one seed does not stop the others.
func (f *Finder) expandArtists(ctx context.Context, seeds []string, result *domain.SearchResult) []string {
	if f.similarity == nil {
		result.Warnings = append(result.Warnings, "similar-artist lookup is not configured; searching your listed artists only")
		f.logger.Warn("similarity provider not configured, skipping expansion")
		return seeds
	}

	all := make([]string, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		all = append(all, seed)
		seen[strings.ToLower(seed)] = true
	}

	for _, seed := range seeds {
		related, err := f.similarity.GetSimilarArtists(ctx, seed, f.similarLimit)
		if err != nil {
			f.metrics.APIRequests.WithLabelValues("lastfm", "error").Inc()
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not find artists similar to %q: %v", seed, err))
			f.logger.Warn("similar artist lookup failed",
				slog.String("artist", seed),
				slog.String("error", err.Error()))
			continue
		}
		f.metrics.APIRequests.WithLabelValues("lastfm", "success").Inc()

		for _, name := range related {
			if seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			all = append(all, name)
			result.SimilarArtists[seed] = append(result.SimilarArtists[seed], name)
		}
	}

	return all
}
