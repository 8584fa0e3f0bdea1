package itinerary

import (
	"encoding/json"
	"strconv"
	"strings"

	"wayfare/models"
)

// FormInput is the raw form submission before any coercion.
type FormInput struct {
	Name        string
	Destination string
	StartDate   string
	EndDate     string
}

// ValidationResult flags each invalid field independently so the UI can
// highlight all of them at once.
type ValidationResult struct {
	Invalid map[string]bool
	Valid   bool
}

// ValidateForm checks every rule without short-circuiting on the first
// failure. Dates compare lexicographically, which is exact for the
// fixed-width "YYYY-MM-DD" format.
func ValidateForm(in FormInput) ValidationResult {
	invalid := make(map[string]bool)

	if strings.TrimSpace(in.Name) == "" {
		invalid["name"] = true
	}
	if strings.TrimSpace(in.Destination) == "" {
		invalid["destination"] = true
	}
	if in.StartDate == "" {
		invalid["startDate"] = true
	}
	if in.EndDate == "" || (in.StartDate != "" && in.EndDate < in.StartDate) {
		invalid["endDate"] = true
	}

	return ValidationResult{Invalid: invalid, Valid: len(invalid) == 0}
}

// CoerceBudget never rejects: anything that is not a non-negative number
// becomes the fallback default.
func CoerceBudget(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if v >= 0 {
			return v
		}
	case json.Number:
		if f, err := v.Float64(); err == nil && f >= 0 {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 {
			return f
		}
	}
	return models.DefaultBudget
}
