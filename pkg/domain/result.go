package domain

import "fmt"

// FormattedEvent is the flat display projection of an Event, built once per
// event at render time.
type FormattedEvent struct {
	Name            string `json:"name"`
	Date            string `json:"date"`
	Time            string `json:"time,omitempty"`
	Venue           string `json:"venue"`
	City            string `json:"city,omitempty"`
	URL             string `json:"url,omitempty"`
	Price           string `json:"price,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	Artist          string `json:"artist,omitempty"`
	Popularity      int    `json:"popularity"`
	PopularityLabel string `json:"popularity_label,omitempty"`
}

// PopularityLabel renders a listener count the way the result page shows it:
// "5.1M listeners", "320K listeners", "42 listeners", or "" when unknown.
func PopularityLabel(listeners int) string {
	switch {
	case listeners >= 1_000_000:
		return fmt.Sprintf("%.1fM listeners", float64(listeners)/1_000_000)
	case listeners >= 1_000:
		return fmt.Sprintf("%.0fK listeners", float64(listeners)/1_000)
	case listeners > 0:
		return fmt.Sprintf("%d listeners", listeners)
	}
	return ""
}

// SearchResult is everything one search run produces. Warnings carry the
// non-fatal failures (a term that could not be searched, a similarity lookup
// that failed) so the caller can show them without treating the run as an
// error.
type SearchResult struct {
	Events          []FormattedEvent    `json:"events"`
	SimilarArtists  map[string][]string `json:"similar_artists,omitempty"`
	SearchedArtists []string            `json:"searched_artists,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
	Total           int                 `json:"total"`
}
