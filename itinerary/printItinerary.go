package itinerary

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /api/itineraries/print/:id
// PrintItinerary renders a one-page PDF summary of the trip.
func (h *Handler) PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rec, ok := h.store.Get(ps.ByName("id"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, rec.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Destination: %s", rec.Destination), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Dates: %s to %s (%d days)", rec.StartDate, rec.EndDate, TripLength(rec.StartDate, rec.EndDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Status: %s", StatusLabel(rec.Status)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Budget: %.2f", rec.Budget), "", 1, "L", false, 0, "")

	if strings.TrimSpace(rec.Notes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, rec.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=itinerary-%s.pdf", rec.ID))
	w.Write(buf.Bytes())
}
