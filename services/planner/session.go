package planner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/mcptool"
	"voyago/services/registry"
)

// DefaultPlannerSession drives a single planning run: it connects the
// registered tools, hands the request to the backend, and validates the
// returned itinerary. No state outlives the returned artifact.
type DefaultPlannerSession struct {
	Cfg      *config.Config
	Registry *registry.Registry
	Backend  PlannerBackend
	Logger   *zap.Logger
}

func (s *DefaultPlannerSession) Plan(ctx context.Context, req models.TripRequest) (*models.ItineraryArtifact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ceiling := s.Cfg.PlanTimeout()
	ctx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	pool, notices := mcptool.Connect(ctx, s.Registry.List(), s.Logger)
	defer pool.Close()

	s.Logger.Info("Starting planning run",
		zap.String("backend", s.Backend.Name()),
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
		zap.Strings("tools", pool.Names()))

	started := time.Now()
	raw, err := s.Backend.Plan(ctx, req, pool)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, models.OrchestrationTimeoutError{Timeout: ceiling, Err: err}
		}
		return nil, err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, models.OrchestrationTimeoutError{Timeout: ceiling}
	}

	artifact, err := parseArtifact(raw, req)
	if err != nil {
		return nil, err
	}

	artifact.ID = uuid.NewString()
	artifact.GeneratedAt = time.Now().UTC()
	artifact.Notices = notices

	s.Logger.Info("Planning run finished",
		zap.String("itineraryId", artifact.ID),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("dayPlans", len(artifact.Days)),
		zap.Int("notices", len(notices)))

	return artifact, nil
}
