package itinerary

import (
	"hash/fnv"
	"math"
	"time"

	"wayfare/models"
)

// Palette for the per-record color tag. Fixed so a record keeps its color
// across re-renders and restarts.
var Palette = [5]string{"#2563eb", "#16a34a", "#d97706", "#dc2626", "#7c3aed"}

const isoDate = "2006-01-02"

// TripLength returns the inclusive day count of the date range: a trip that
// starts and ends on the same date is 1 day. Unparseable dates render as a
// 1-day trip instead of failing.
func TripLength(startDate, endDate string) int {
	start, errStart := time.Parse(isoDate, startDate)
	end, errEnd := time.Parse(isoDate, endDate)
	if errStart != nil || errEnd != nil {
		return 1
	}

	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ColorTag picks the palette entry for a record. Hashing the full id keeps
// the index stable even if the id format changes.
func ColorTag(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return Palette[h.Sum32()%uint32(len(Palette))]
}

// StatusLabel maps a status to its display string; unknown statuses pass
// through unchanged.
func StatusLabel(status string) string {
	switch status {
	case models.StatusPlanning:
		return "Planning"
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusCompleted:
		return "Completed"
	}
	return status
}
