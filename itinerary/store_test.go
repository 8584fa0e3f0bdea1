package itinerary

import (
	"context"
	"reflect"
	"testing"
	"time"

	"wayfare/kvstore"
	"wayfare/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func tripFields(name, destination, start, end string) Fields {
	return Fields{
		Name:        strPtr(name),
		Destination: strPtr(destination),
		StartDate:   strPtr(start),
		EndDate:     strPtr(end),
	}
}

// failingKV reads normally but refuses every write.
type failingKV struct {
	inner kvstore.Store
}

func (f *failingKV) Get(ctx context.Context, key string, out any) bool {
	return f.inner.Get(ctx, key, out)
}

func (f *failingKV) Set(ctx context.Context, key string, value any) bool {
	return false
}

func TestCreateThenListIncludesRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	rec, err := store.Create(ctx, tripFields("Honeymoon", "Kyoto", "2026-04-01", "2026-04-10"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt == "" {
		t.Fatalf("expected assigned id and createdAt, got %+v", rec)
	}
	if rec.Status != models.StatusPlanning {
		t.Errorf("expected default status planning, got %q", rec.Status)
	}
	if rec.Budget != models.DefaultBudget {
		t.Errorf("expected fallback budget %d, got %v", models.DefaultBudget, rec.Budget)
	}

	listed := store.List(Filter{Status: "all"})
	if len(listed) != 1 {
		t.Fatalf("expected 1 record, got %d", len(listed))
	}
	if !reflect.DeepEqual(listed[0], rec) {
		t.Errorf("listed record differs from created: %+v vs %+v", listed[0], rec)
	}
}

func TestCreateAssignsUniqueIDsAndPrepends(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	first, _ := store.Create(ctx, tripFields("A", "Lisbon", "2026-01-01", "2026-01-02"))
	second, _ := store.Create(ctx, tripFields("B", "Porto", "2026-02-01", "2026-02-02"))

	if first.ID == second.ID {
		t.Fatalf("ids must be unique, both were %q", first.ID)
	}

	listed := store.List(Filter{})
	if listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Errorf("expected newest-first order, got %q then %q", listed[0].ID, listed[1].ID)
	}
}

func TestEditMergesAndStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	rec, _ := store.Create(ctx, tripFields("Summer", "Tokyo", "2026-07-01", "2026-07-14"))
	if rec.UpdatedAt != "" {
		t.Fatalf("updatedAt must be empty before the first edit, got %q", rec.UpdatedAt)
	}

	status := models.StatusConfirmed
	if err := store.Edit(ctx, rec.ID, Fields{Status: &status}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, ok := store.Get(rec.ID)
	if !ok {
		t.Fatal("record disappeared after edit")
	}
	if got.Status != models.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", got.Status)
	}
	if got.Name != "Summer" || got.Destination != "Tokyo" || got.StartDate != "2026-07-01" || got.EndDate != "2026-07-14" {
		t.Errorf("unsupplied fields changed: %+v", got)
	}
	if got.UpdatedAt == "" {
		t.Fatal("updatedAt not stamped")
	}

	firstStamp, err := time.Parse(time.RFC3339Nano, got.UpdatedAt)
	if err != nil {
		t.Fatalf("unparseable updatedAt %q: %v", got.UpdatedAt, err)
	}

	// a no-op payload still stamps a newer updatedAt
	time.Sleep(time.Millisecond)
	if err := store.Edit(ctx, rec.ID, Fields{}); err != nil {
		t.Fatalf("no-op edit failed: %v", err)
	}
	got, _ = store.Get(rec.ID)
	secondStamp, _ := time.Parse(time.RFC3339Nano, got.UpdatedAt)
	if !secondStamp.After(firstStamp) {
		t.Errorf("expected newer updatedAt, got %v then %v", firstStamp, secondStamp)
	}
}

func TestEditUnknownIDFails(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	if err := store.Edit(ctx, "nope", Fields{Name: strPtr("X")}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	rec, _ := store.Create(ctx, tripFields("Trip", "Oslo", "2026-05-01", "2026-05-02"))

	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Get(rec.ID); ok {
		t.Fatal("record still present after delete")
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if len(store.List(Filter{})) != 0 {
		t.Fatal("collection not empty after deletes")
	}
}

func TestFailedWriteRollsBackMemoryState(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()

	store := NewStore(mem)
	store.Load(ctx)
	rec, _ := store.Create(ctx, tripFields("Kept", "Rome", "2026-03-01", "2026-03-05"))

	// swap in a store whose writes fail, seeded with the same state
	broken := NewStore(&failingKV{inner: mem})
	broken.Load(ctx)

	if _, err := broken.Create(ctx, tripFields("Lost", "Bari", "2026-06-01", "2026-06-02")); err != ErrStorage {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(broken.List(Filter{})) != 1 {
		t.Fatal("failed create must not leave the record in memory")
	}

	name := "Renamed"
	if err := broken.Edit(ctx, rec.ID, Fields{Name: &name}); err != ErrStorage {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	got, _ := broken.Get(rec.ID)
	if got.Name != "Kept" {
		t.Errorf("failed edit must roll back, got name %q", got.Name)
	}

	if err := broken.Delete(ctx, rec.ID); err != ErrStorage {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if _, ok := broken.Get(rec.ID); !ok {
		t.Error("failed delete must keep the record")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()

	store := NewStore(mem)
	store.Load(ctx)
	store.Create(ctx, Fields{
		Name:        strPtr("Anniversary"),
		Destination: strPtr("Paris"),
		StartDate:   strPtr("2026-09-10"),
		EndDate:     strPtr("2026-09-17"),
		Budget:      floatPtr(2400),
		Notes:       strPtr("book the museum pass early"),
	})
	store.Create(ctx, tripFields("Ski week", "Innsbruck", "2026-12-20", "2026-12-27"))
	before := store.List(Filter{})

	fresh := NewStore(mem)
	fresh.Load(ctx)
	after := fresh.List(Filter{})

	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round-trip mismatch:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestLoadAbsorbsMissingCollection(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory())
	store.Load(ctx)

	if got := store.List(Filter{}); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}
