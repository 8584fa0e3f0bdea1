package itinerary

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"wayfare/kvstore"
	"wayfare/models"
	"wayfare/utils"
)

// StorageKey holds the whole collection as one JSON array; every mutation
// rewrites it.
const StorageKey = "wayfare:itineraries"

var (
	// ErrNotFound is returned by Edit when the id matches no record.
	ErrNotFound = errors.New("itinerary not found")
	// ErrStorage is returned when the persistence write fails; the in-memory
	// collection is rolled back to its pre-mutation state.
	ErrStorage = errors.New("storage write failed")
)

// Fields carries the values of a create/edit submission. Pointer fields
// distinguish "not supplied" from zero values, so edits only touch what the
// caller sent.
type Fields struct {
	Name        *string
	Destination *string
	StartDate   *string
	EndDate     *string
	Status      *string
	Budget      *float64
	Notes       *string
}

// Store owns the in-memory collection and is the only writer to its storage
// key. It is loaded once at startup and injected into the handlers; there are
// no package-level collections. The mutex keeps concurrent HTTP mutations
// sequenced the way the single UI thread sequenced them.
type Store struct {
	kv  kvstore.Store
	key string

	mu      sync.Mutex
	records []models.ItineraryRecord
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv, key: StorageKey}
}

// Load reads the persisted collection. Read failures degrade to an empty
// collection and are never surfaced to callers.
func (s *Store) Load(ctx context.Context) {
	var records []models.ItineraryRecord
	if !s.kv.Get(ctx, s.key, &records) {
		log.Printf("itinerary: no readable collection under %q, starting empty", s.key)
		records = nil
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

// Create assigns a fresh id and createdAt, prepends the record and persists.
// On a failed write the prepend is rolled back.
func (s *Store) Create(ctx context.Context, fields Fields) (models.ItineraryRecord, error) {
	rec := models.ItineraryRecord{
		ID:        utils.GenerateID("itin"),
		Status:    models.StatusPlanning,
		Budget:    models.DefaultBudget,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	applyFields(&rec, fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.ItineraryRecord{rec}, s.records...)
	if !s.kv.Set(ctx, s.key, s.records) {
		s.records = s.records[1:]
		return models.ItineraryRecord{}, ErrStorage
	}
	return rec, nil
}

// Edit shallow-merges the supplied fields into the record with the given id
// and stamps updatedAt; unsupplied fields are preserved. A payload that
// changes nothing still stamps updatedAt.
func (s *Store) Edit(ctx context.Context, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		prev := s.records[i]
		applyFields(&s.records[i], fields)
		s.records[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
		if !s.kv.Set(ctx, s.key, s.records) {
			s.records[i] = prev
			return ErrStorage
		}
		return nil
	}
	return ErrNotFound
}

// Delete removes the record with the given id. An unknown id is a silent
// no-op, so deleting twice succeeds without effect.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		next := make([]models.ItineraryRecord, 0, len(s.records)-1)
		next = append(next, s.records[:i]...)
		next = append(next, s.records[i+1:]...)

		prev := s.records
		s.records = next
		if !s.kv.Set(ctx, s.key, s.records) {
			s.records = prev
			return ErrStorage
		}
		return nil
	}
	return nil
}

// List returns the records satisfying the filter, in collection order. The
// result is always a fresh slice, never the internal one.
func (s *Store) List(filter Filter) []models.ItineraryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Apply(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.ItineraryRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.ItineraryRecord{}, false
}

// applyFields merges the supplied fields into rec. Budget keeps its previous
// value when the submitted one is negative; coercion of non-numeric input
// happens at the payload boundary.
func applyFields(rec *models.ItineraryRecord, f Fields) {
	if f.Name != nil {
		rec.Name = strings.TrimSpace(*f.Name)
	}
	if f.Destination != nil {
		rec.Destination = strings.TrimSpace(*f.Destination)
	}
	if f.StartDate != nil {
		rec.StartDate = *f.StartDate
	}
	if f.EndDate != nil {
		rec.EndDate = *f.EndDate
	}
	if f.Status != nil && *f.Status != "" {
		rec.Status = *f.Status
	}
	if f.Budget != nil && *f.Budget >= 0 {
		rec.Budget = *f.Budget
	}
	if f.Notes != nil {
		rec.Notes = *f.Notes
	}
}
