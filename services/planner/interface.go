// File: services/planner/interface.go
package planner

import (
	"context"

	"voyago/models"
	"voyago/services/mcptool"
)

// PlannerService turns a trip request into an itinerary artifact. One call
// per user submission; the caller blocks until the run completes or the
// configured ceiling elapses.
type PlannerService interface {
	Plan(ctx context.Context, req models.TripRequest) (*models.ItineraryArtifact, error)
}

// PlannerBackend is the capability that produces the raw itinerary document.
// The concrete backend (OpenAI tool-calling, Gemini, a test fake) is swapped
// behind this interface; the session never reproduces its decision logic.
type PlannerBackend interface {
	// Plan returns the model's raw output, which the session parses into an
	// ItineraryArtifact.
	Plan(ctx context.Context, req models.TripRequest, pool *mcptool.Pool) (string, error)
	Name() string
}
