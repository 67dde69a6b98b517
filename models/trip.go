package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for all trip dates.
const DateLayout = "2006-01-02"

// TripRequest is the payload coming from the planner form into /api/trips/plan.
// It is immutable once submitted; the planner only reads it.
type TripRequest struct {
	Origin      string   `json:"origin"`                // departure airport IATA code, e.g. "BOM"
	Destination string   `json:"destination"`           // destination airport IATA code, e.g. "DEL"
	StartDate   string   `json:"startDate"`             // YYYY-MM-DD
	ReturnDate  string   `json:"returnDate,omitempty"`  // YYYY-MM-DD, empty for one-way
	Days        int      `json:"days"`                  // trip duration in days
	BudgetUSD   float64  `json:"budgetUSD"`             // informational, not enforced
	Preferences string   `json:"preferences,omitempty"` // free-text description
	Tags        []string `json:"tags,omitempty"`        // selected quick preferences
}

// Validate checks the request before a planning run is started.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ValidationError{Field: "origin", Msg: "departure airport is required"}
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ValidationError{Field: "destination", Msg: "destination airport is required"}
	}
	if r.Days <= 0 {
		return ValidationError{Field: "days", Msg: "trip duration must be positive"}
	}
	if r.BudgetUSD <= 0 {
		return ValidationError{Field: "budgetUSD", Msg: "budget must be positive"}
	}
	start, err := r.Start()
	if err != nil {
		return ValidationError{Field: "startDate", Msg: "start date must be YYYY-MM-DD"}
	}
	if r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, r.ReturnDate)
		if err != nil {
			return ValidationError{Field: "returnDate", Msg: "return date must be YYYY-MM-DD"}
		}
		if ret.Before(start) {
			return ValidationError{Field: "returnDate", Msg: "return date is before the start date"}
		}
	}
	return nil
}

// Start parses the start date.
func (r TripRequest) Start() (time.Time, error) {
	return time.Parse(DateLayout, r.StartDate)
}

// PreferenceText combines the free-text description with the selected quick
// preferences into a single line for the planning prompt.
func (r TripRequest) PreferenceText() string {
	var parts []string
	if p := strings.TrimSpace(r.Preferences); p != "" {
		parts = append(parts, p)
	}
	for _, tag := range r.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "General sightseeing"
	}
	return strings.Join(parts, ", ")
}
