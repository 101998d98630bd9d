package finder

import (
	"fmt"
	"time"

	"github.com/yair/concert-finder/pkg/domain"
)

// Format projects a raw event into its flat display record. Pure function:
// missing fields fall back to "Unknown Event" / "TBD" / "Unknown Venue" or
// empty strings, and unparseable date or time values pass through as-is.
func Format(ev domain.Event) domain.FormattedEvent {
	out := domain.FormattedEvent{
		Name:            "Unknown Event",
		Date:            "TBD",
		Venue:           "Unknown Venue",
		URL:             ev.URL,
		Popularity:      ev.Popularity,
		PopularityLabel: domain.PopularityLabel(ev.Popularity),
	}

	if ev.Name != "" {
		out.Name = ev.Name
	}

	if date := ev.Dates.Start.LocalDate; date != "" {
		out.Date = date
		if t, err := time.Parse("2006-01-02", date); err == nil {
			out.Date = t.Format("Mon, Jan 02, 2006")
		}
	}
	if local := ev.Dates.Start.LocalTime; local != "" {
		out.Time = local
		if t, err := time.Parse("15:04:05", local); err == nil {
			out.Time = t.Format("03:04 PM")
		}
	}

	if len(ev.Embedded.Venues) > 0 {
		venue := ev.Embedded.Venues[0]
		if venue.Name != "" {
			out.Venue = venue.Name
		}
		out.City = venue.City.Name
	}

	if len(ev.PriceRanges) > 0 {
		min, max := ev.PriceRanges[0].Min, ev.PriceRanges[0].Max
		switch {
		case min != 0 && max != 0:
			out.Price = fmt.Sprintf("$%.0f - $%.0f", min, max)
		case min != 0:
			out.Price = fmt.Sprintf("From $%.0f", min)
		}
	}

	for _, img := range ev.Images {
		if img.Width >= 200 {
			out.ImageURL = img.URL
			break
		}
	}
	if out.ImageURL == "" && len(ev.Images) > 0 {
		out.ImageURL = ev.Images[0].URL
	}

	if len(ev.Embedded.Attractions) > 0 {
		out.Artist = ev.Embedded.Attractions[0].Name
	}

	return out
}
