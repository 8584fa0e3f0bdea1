package search

import (
	"context"
	"strings"
	"time"

	"wayfare/kvstore"
	"wayfare/models"
)

// HistoryKey holds the capped most-recent-first list of search terms,
// separate from the itinerary collection key.
const HistoryKey = "wayfare:search:history"

// HistoryLimit caps how many distinct terms are kept.
const HistoryLimit = 10

// History persists the recent-search list through the kv adapter. Entries
// are deduplicated by query text; the latest occurrence takes position 0.
type History struct {
	kv  kvstore.Store
	key string
}

func NewHistory(kv kvstore.Store) *History {
	return &History{kv: kv, key: HistoryKey}
}

// Normalize is the canonical form a term is recorded and deduplicated under.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Record stores the term at position 0, dropping any older occurrence and
// trimming to the cap. Empty terms are ignored; a failed write only costs
// the history entry.
func (h *History) Record(ctx context.Context, term string) {
	q := Normalize(term)
	if q == "" {
		return
	}

	entries := h.Entries(ctx)
	next := make([]models.SearchHistoryEntry, 0, len(entries)+1)
	next = append(next, models.SearchHistoryEntry{
		Query:     q,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	for _, e := range entries {
		if e.Query == q {
			continue
		}
		next = append(next, e)
	}
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}

	h.kv.Set(ctx, h.key, next)
}

// Entries returns the stored history, most recent first. Read failures come
// back as an empty history.
func (h *History) Entries(ctx context.Context) []models.SearchHistoryEntry {
	var entries []models.SearchHistoryEntry
	h.kv.Get(ctx, h.key, &entries)
	return entries
}
