package domain

import (
	"fmt"
	"strings"
)

type SortMode string

const (
	SortByPopularity SortMode = "popularity"
	SortByDate       SortMode = "date"
)

const (
	MaxArtists = 10
	MaxGenres  = 3
)

// Fixed option sets offered to the user. Values outside these sets are
// rejected by Validate.
var (
	RadiusOptions     = []int{10, 25, 50, 75, 100}
	DateWindowOptions = []int{14, 30, 90, 180}
)

type SearchCriteria struct {
	Artists            []string `json:"artists"`
	Genres             []string `json:"genres"`
	PostalCode         string   `json:"postal_code"`
	Radius             int      `json:"radius"`
	DateWindowDays     int      `json:"date_window_days"`
	ExcludeLargeVenues bool     `json:"exclude_large_venues"`
	IncludeSimilar     bool     `json:"include_similar"`
	SortMode           SortMode `json:"sort"`
}

// Normalize trims blank entries, enforces the list caps, and fills unset
// fields with the defaults the original form preselects.
func (c *SearchCriteria) Normalize() {
	c.Artists = cleanList(c.Artists, MaxArtists)
	c.Genres = cleanList(c.Genres, MaxGenres)
	c.PostalCode = strings.TrimSpace(c.PostalCode)
	if c.Radius == 0 {
		c.Radius = 25
	}
	if c.DateWindowDays == 0 {
		c.DateWindowDays = 30
	}
	if c.SortMode == "" {
		c.SortMode = SortByPopularity
	}
}

func (c *SearchCriteria) Validate() error {
	if len(c.Artists) == 0 && len(c.Genres) == 0 {
		return ErrNoSearchTerms
	}
	if !containsInt(RadiusOptions, c.Radius) {
		return fmt.Errorf("%w: radius %d is not one of %v", ErrInvalidRequest, c.Radius, RadiusOptions)
	}
	if !containsInt(DateWindowOptions, c.DateWindowDays) {
		return fmt.Errorf("%w: date window %d is not one of %v", ErrInvalidRequest, c.DateWindowDays, DateWindowOptions)
	}
	if c.SortMode != SortByPopularity && c.SortMode != SortByDate {
		return fmt.Errorf("%w: unknown sort mode %q", ErrInvalidRequest, c.SortMode)
	}
	return nil
}

func cleanList(values []string, max int) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		cleaned = append(cleaned, v)
		if len(cleaned) == max {
			break
		}
	}
	return cleaned
}

func containsInt(options []int, value int) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
