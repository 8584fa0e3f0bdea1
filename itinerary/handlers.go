package itinerary

import (
	"encoding/json"
	"errors"
	"net/http"

	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the itinerary API. The store is injected; handlers hold no
// package-level state.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// itineraryPayload is the wire form of a create/edit body. Budget is typed
// any so non-numeric submissions coerce to the default instead of failing
// the decode.
type itineraryPayload struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
	Budget      any     `json:"budget"`
	Notes       *string `json:"notes"`
}

func (p itineraryPayload) fields() Fields {
	f := Fields{
		Name:        p.Name,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Notes:       p.Notes,
	}
	if p.Budget != nil {
		b := CoerceBudget(p.Budget)
		f.Budget = &b
	}
	return f
}

// listItem is a record plus its derived presentation values, recomputed on
// every response.
type listItem struct {
	models.ItineraryRecord
	Days        int    `json:"days"`
	Color       string `json:"color"`
	StatusLabel string `json:"statusLabel"`
}

func toListItem(rec models.ItineraryRecord) listItem {
	return listItem{
		ItineraryRecord: rec,
		Days:            TripLength(rec.StartDate, rec.EndDate),
		Color:           ColorTag(rec.ID),
		StatusLabel:     StatusLabel(rec.Status),
	}
}

// GET /api/itineraries
func (h *Handler) GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := Filter{Status: query.Get("status"), Search: query.Get("q")}

	records := h.store.List(filter)
	items := make([]listItem, 0, len(records))
	for _, rec := range records {
		items = append(items, toListItem(rec))
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/itineraries/all/:id
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rec, ok := h.store.Get(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toListItem(rec))
}

// POST /api/itineraries
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload itineraryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result := ValidateForm(formInput(payload))
	if !result.Valid {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error":   "Validation failed",
			"invalid": result.Invalid,
		})
		return
	}

	rec, err := h.store.Create(r.Context(), payload.fields())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save itinerary, please try again")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}

// PUT /api/itineraries/:id
func (h *Handler) UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	existing, ok := h.store.Get(id)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	var payload itineraryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// validate against the merged record so a partial edit cannot break the
	// endDate >= startDate invariant
	merged := existing
	applyFields(&merged, payload.fields())
	result := ValidateForm(FormInput{
		Name:        merged.Name,
		Destination: merged.Destination,
		StartDate:   merged.StartDate,
		EndDate:     merged.EndDate,
	})
	if !result.Valid {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error":   "Validation failed",
			"invalid": result.Invalid,
		})
		return
	}

	switch err := h.store.Edit(r.Context(), id, payload.fields()); {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save itinerary, please try again")
		return
	}

	rec, _ := h.store.Get(id)
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// DELETE /api/itineraries/:id
func (h *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.store.Delete(r.Context(), ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not delete itinerary, please try again")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Itinerary deleted successfully"})
}

func formInput(p itineraryPayload) FormInput {
	in := FormInput{}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Destination != nil {
		in.Destination = *p.Destination
	}
	if p.StartDate != nil {
		in.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		in.EndDate = *p.EndDate
	}
	return in
}
