package itinerary

import (
	"strings"

	"wayfare/models"
	"wayfare/utils"
)

// Filter selects a read-only projection of the collection. Both predicates
// are conjunctive.
type Filter struct {
	Status string // "all" or empty keeps every status
	Search string // case-insensitive substring over name and destination
}

// Apply returns the records satisfying the filter, preserving their relative
// order. Recomputed from scratch on every call; the expected data volume is a
// personal itinerary list, not a server-scale dataset.
func (f Filter) Apply(records []models.ItineraryRecord) []models.ItineraryRecord {
	term := strings.TrimSpace(f.Search)

	out := make([]models.ItineraryRecord, 0, len(records))
	for _, rec := range records {
		if f.Status != "" && f.Status != "all" && rec.Status != f.Status {
			continue
		}
		if term != "" && !utils.ContainsIgnoreCase(rec.Name, term) && !utils.ContainsIgnoreCase(rec.Destination, term) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
