package domain

import (
	"strconv"
	"strings"
)

// Event is a Ticketmaster Discovery API event record, decoded with the
// fields the pipeline reads. Nested structures may be partially absent on
// the wire; absent fields decode to their zero values.
type Event struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	URL         string        `json:"url,omitempty"`
	Dates       EventDates    `json:"dates"`
	PriceRanges []PriceRange  `json:"priceRanges,omitempty"`
	Images      []Image       `json:"images,omitempty"`
	Embedded    EventEmbedded `json:"_embedded"`

	// Popularity is the listener count of the event's primary artist.
	// It is attached by the ranking step and never comes from the wire.
	Popularity int `json:"-"`
}

type EventDates struct {
	Start EventDate `json:"start"`
}

type EventDate struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
	DateTime  string `json:"dateTime"`
}

type EventEmbedded struct {
	Venues      []Venue      `json:"venues"`
	Attractions []Attraction `json:"attractions"`
}

type Venue struct {
	Name        string    `json:"name"`
	City        City      `json:"city"`
	GeneralInfo VenueInfo `json:"generalInfo,omitempty"`
	BoxOffice   VenueInfo `json:"boxOfficeInfo,omitempty"`
}

type City struct {
	Name string `json:"name"`
}

type VenueInfo struct {
	Capacity Capacity `json:"capacity"`
}

type Attraction struct {
	Name string `json:"name"`
}

type PriceRange struct {
	Currency string  `json:"currency,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Capacity decodes a venue capacity that Ticketmaster serves as either a
// JSON number or a quoted string. Malformed values decode to 0 rather than
// failing the whole event.
type Capacity int

func (c *Capacity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Capacity(n)
	return nil
}
