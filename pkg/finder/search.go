package finder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yair/concert-finder/pkg/domain"
	"github.com/yair/concert-finder/pkg/integrations"
)

// LargeVenueCapacity is the threshold above which a venue counts as large.
const LargeVenueCapacity = 10000

// search queries the event API once per term (artists then genres), merging
// results with first-occurrence-wins deduplication by event id. A failed term
// becomes a warning and the remaining terms still run. The merged list comes
// back sorted ascending by start date-time.
func (f *Finder) search(ctx context.Context, artists []string, criteria domain.SearchCriteria, result *domain.SearchResult) []domain.Event {
	terms := make([]string, 0, len(artists)+len(criteria.Genres))
	for _, term := range append(append([]string{}, artists...), criteria.Genres...) {
		if strings.TrimSpace(term) == "" {
			continue
		}
		terms = append(terms, term)
	}

	now := f.clock.Now()
	query := integrations.SearchQuery{
		PostalCode: criteria.PostalCode,
		Radius:     criteria.Radius,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, criteria.DateWindowDays),
	}

	seen := make(map[string]bool)
	var events []domain.Event

	for _, term := range terms {
		found, err := f.events.SearchEvents(ctx, term, query)
		if err != nil {
			f.metrics.APIRequests.WithLabelValues("ticketmaster", "error").Inc()
			result.Warnings = append(result.Warnings, fmt.Sprintf("search for %q failed: %v", term, err))
			f.logger.Warn("event search failed",
				slog.String("term", term),
				slog.String("error", err.Error()))
			continue
		}
		f.metrics.APIRequests.WithLabelValues("ticketmaster", "success").Inc()

		for _, ev := range found {
			if seen[ev.ID] {
				continue
			}
			if criteria.ExcludeLargeVenues {
				if capacity, ok := resolveCapacity(ev); ok && capacity > LargeVenueCapacity {
					continue
				}
			}
			seen[ev.ID] = true
			events = append(events, ev)
		}
	}

	sortByDate(events)
	return events
}

// resolveCapacity looks for a venue capacity in priority order:
// generalInfo.capacity first, then boxOfficeInfo.capacity. Absence of a
// capacity value is not a filtering signal.
func resolveCapacity(ev domain.Event) (int, bool) {
	if len(ev.Embedded.Venues) == 0 {
		return 0, false
	}
	venue := ev.Embedded.Venues[0]
	if venue.GeneralInfo.Capacity > 0 {
		return int(venue.GeneralInfo.Capacity), true
	}
	if venue.BoxOffice.Capacity > 0 {
		return int(venue.BoxOffice.Capacity), true
	}
	return 0, false
}

// sortByDate orders events ascending by their raw start date-time string.
// All values share the ISO-8601 Zulu format, so lexicographic order is
// chronological order; events without a date-time sort first.
func sortByDate(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Dates.Start.DateTime < events[j].Dates.Start.DateTime
	})
}
