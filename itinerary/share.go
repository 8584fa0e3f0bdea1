package itinerary

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// ShareURL is the detail-view link encoded into the QR code; the id rides as
// a percent-encoded query parameter.
func ShareURL(id string) string {
	shareURL := "/itinerary?id=" + url.QueryEscape(id)
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		shareURL = strings.TrimRight(base, "/") + shareURL
	}
	return shareURL
}

// GET /api/itineraries/qr/:id
// ItineraryQR returns a QR PNG of the record's share link.
func (h *Handler) ItineraryQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rec, ok := h.store.Get(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	png, err := qrcode.Encode(ShareURL(rec.ID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
