package search

import (
	"net/http"
	"net/url"

	"wayfare/itinerary"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves search submissions and the recent-search history.
type Handler struct {
	store   *itinerary.Store
	history *History
}

func NewHandler(store *itinerary.Store, history *History) *Handler {
	return &Handler{store: store, history: history}
}

// GET /api/search?q=
// A successful submission is recorded into the history and answered with the
// matches plus the results URL the client navigates to.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	term := Normalize(r.URL.Query().Get("q"))
	if term == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	h.history.Record(r.Context(), term)
	results := h.store.List(itinerary.Filter{Status: "all", Search: term})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"query":    term,
		"results":  results,
		"redirect": "/search?q=" + url.QueryEscape(term),
	})
}

// GET /api/search/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entries := h.history.Entries(r.Context())
	if entries == nil {
		entries = []models.SearchHistoryEntry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
