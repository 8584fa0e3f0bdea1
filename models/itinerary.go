package models

// Itinerary statuses
const (
	StatusPlanning  = "planning"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
)

// DefaultBudget replaces a missing or non-numeric budget; it is never a
// validation error.
const DefaultBudget = 1500

// ItineraryRecord represents a single planned trip. Dates are ISO
// "YYYY-MM-DD" strings, so range checks reduce to lexicographic comparison.
// The whole collection is persisted as one JSON array under a single storage
// key.
type ItineraryRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	// empty until the first edit
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// SearchHistoryEntry is one remembered search term. The history is stored
// most-recent-first under its own key, capped and deduplicated by query.
type SearchHistoryEntry struct {
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}
