package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wayfare/itinerary"
	"wayfare/kvstore"
	"wayfare/models"

	"github.com/julienschmidt/httprouter"
)

func newSearchRouter(t *testing.T) (*httprouter.Router, *itinerary.Store, *History) {
	t.Helper()

	kv := kvstore.NewMemory()
	store := itinerary.NewStore(kv)
	store.Load(context.Background())
	history := NewHistory(kv)
	h := NewHandler(store, history)

	router := httprouter.New()
	router.GET("/api/search", h.Search)
	router.GET("/api/search/history", h.GetHistory)
	return router, store, history
}

func seedTrip(t *testing.T, store *itinerary.Store, name, destination string) {
	t.Helper()

	start := "2026-06-01"
	end := "2026-06-05"
	_, err := store.Create(context.Background(), itinerary.Fields{
		Name:        &name,
		Destination: &destination,
		StartDate:   &start,
		EndDate:     &end,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
}

func TestSearchHandlerReturnsMatchesAndRedirect(t *testing.T) {
	router, store, history := newSearchRouter(t)
	seedTrip(t, store, "Blossom season", "Tokyo")
	seedTrip(t, store, "City break", "Paris")

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=Tokyo+2026", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Query    string                   `json:"query"`
		Results  []models.ItineraryRecord `json:"results"`
		Redirect string                   `json:"redirect"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if resp.Query != "tokyo 2026" {
		t.Errorf("term not normalized: %q", resp.Query)
	}
	if resp.Redirect != "/search?q=tokyo+2026" {
		t.Errorf("redirect not percent-encoded as expected: %q", resp.Redirect)
	}

	entries := history.Entries(context.Background())
	if len(entries) != 1 || entries[0].Query != "tokyo 2026" {
		t.Errorf("search not recorded into history: %+v", entries)
	}
}

func TestSearchHandlerFiltersRecords(t *testing.T) {
	router, store, _ := newSearchRouter(t)
	seedTrip(t, store, "Blossom season", "Tokyo")
	seedTrip(t, store, "City break", "Paris")

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=tokyo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Results []models.ItineraryRecord `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Destination != "Tokyo" {
		t.Fatalf("expected only the Tokyo record, got %+v", resp.Results)
	}
}

func TestSearchHandlerRejectsEmptyTerm(t *testing.T) {
	router, _, history := newSearchRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=++", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if entries := history.Entries(context.Background()); len(entries) != 0 {
		t.Errorf("rejected search recorded into history: %+v", entries)
	}
}

func TestGetHistoryHandlerReturnsEmptyArray(t *testing.T) {
	router, _, _ := newSearchRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
