package finder

import (
	"strings"

	"github.com/yair/concert-finder/pkg/domain"
)

// Promotional suffixes commonly appended to event names. Checked most
// specific first so "X World Tour" strips to "X", not "X World".
var promoSuffixes = []string{
	" World Tour",
	" Tour",
	" Live",
	" Concert",
	" Show",
	" Presents",
}

// ExtractPrimaryArtist resolves the artist an event is really about: the
// first attraction when one exists, otherwise the event name truncated at the
// first matching promotional suffix.
func ExtractPrimaryArtist(ev domain.Event) string {
	if len(ev.Embedded.Attractions) > 0 {
		return ev.Embedded.Attractions[0].Name
	}

	name := ev.Name
	for _, suffix := range promoSuffixes {
		if idx := strings.Index(name, suffix); idx >= 0 {
			name = name[:idx]
			break
		}
	}
	return strings.TrimSpace(name)
}
