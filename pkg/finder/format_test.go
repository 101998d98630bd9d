package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yair/concert-finder/pkg/domain"
)

func TestFormatFullEvent(t *testing.T) {
	ev := domain.Event{
		ID:   "ev1",
		Name: "Radiohead",
		URL:  "https://tickets.example/ev1",
		Dates: domain.EventDates{Start: domain.EventDate{
			LocalDate: "2026-10-01",
			LocalTime: "20:30:00",
			DateTime:  "2026-10-02T00:30:00Z",
		}},
		PriceRanges: []domain.PriceRange{{Min: 45, Max: 150}},
		Images: []domain.Image{
			{URL: "https://img.example/thumb.jpg", Width: 100},
			{URL: "https://img.example/wide.jpg", Width: 640},
		},
		Embedded: domain.EventEmbedded{
			Venues:      []domain.Venue{{Name: "The Sinclair", City: domain.City{Name: "Cambridge"}}},
			Attractions: []domain.Attraction{{Name: "Radiohead"}},
		},
		Popularity: 5123456,
	}

	out := Format(ev)

	assert.Equal(t, "Radiohead", out.Name)
	assert.Equal(t, "Thu, Oct 01, 2026", out.Date)
	assert.Equal(t, "08:30 PM", out.Time)
	assert.Equal(t, "The Sinclair", out.Venue)
	assert.Equal(t, "Cambridge", out.City)
	assert.Equal(t, "https://tickets.example/ev1", out.URL)
	assert.Equal(t, "$45 - $150", out.Price)
	assert.Equal(t, "https://img.example/wide.jpg", out.ImageURL)
	assert.Equal(t, "Radiohead", out.Artist)
	assert.Equal(t, 5123456, out.Popularity)
	assert.Equal(t, "5.1M listeners", out.PopularityLabel)
}

func TestFormatFallbacks(t *testing.T) {
	t.Run("empty event", func(t *testing.T) {
		out := Format(domain.Event{})

		assert.Equal(t, "Unknown Event", out.Name)
		assert.Equal(t, "TBD", out.Date)
		assert.Empty(t, out.Time)
		assert.Equal(t, "Unknown Venue", out.Venue)
		assert.Empty(t, out.City)
		assert.Empty(t, out.Price)
		assert.Empty(t, out.ImageURL)
		assert.Empty(t, out.Artist)
		assert.Zero(t, out.Popularity)
	})

	t.Run("unparseable date and time pass through", func(t *testing.T) {
		ev := domain.Event{
			Dates: domain.EventDates{Start: domain.EventDate{
				LocalDate: "sometime soon",
				LocalTime: "late",
			}},
		}
		out := Format(ev)

		assert.Equal(t, "sometime soon", out.Date)
		assert.Equal(t, "late", out.Time)
	})

	t.Run("no wide image falls back to the first", func(t *testing.T) {
		ev := domain.Event{
			Images: []domain.Image{
				{URL: "https://img.example/a.jpg", Width: 120},
				{URL: "https://img.example/b.jpg", Width: 150},
			},
		}
		assert.Equal(t, "https://img.example/a.jpg", Format(ev).ImageURL)
	})
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		name string
		min  float64
		max  float64
		want string
	}{
		{"min and max", 20, 20, "$20 - $20"},
		{"min only", 20, 0, "From $20"},
		{"neither", 0, 0, ""},
		{"rounds to whole dollars", 19.5, 120.4, "$20 - $120"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := domain.Event{PriceRanges: []domain.PriceRange{{Min: tc.min, Max: tc.max}}}
			assert.Equal(t, tc.want, Format(ev).Price)
		})
	}
}
