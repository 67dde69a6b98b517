package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/mcptool"
	"voyago/services/registry"
)

// fakeBackend is the deterministic PlannerBackend used across session tests.
type fakeBackend struct {
	output string
	err    error
	delay  time.Duration
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Plan(ctx context.Context, req models.TripRequest, pool *mcptool.Pool) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.output, f.err
}

func emptyRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.NewWithCredentials(nil)
	reg.Freeze()
	return reg
}

func testSession(t *testing.T, backend PlannerBackend, reg *registry.Registry) *DefaultPlannerSession {
	t.Helper()
	if reg == nil {
		reg = emptyRegistry(t)
	}
	return &DefaultPlannerSession{
		Cfg:      &config.Config{PlanTimeoutSeconds: 30},
		Registry: reg,
		Backend:  backend,
		Logger:   zap.NewNop(),
	}
}

func TestPlanReturnsArtifactWithRequestedDayCount(t *testing.T) {
	session := testSession(t, &fakeBackend{output: itineraryJSON(5)}, nil)

	artifact, err := session.Plan(context.Background(), testRequest(5))
	require.NoError(t, err)

	assert.Len(t, artifact.Days, 5)
	assert.NotEmpty(t, artifact.ID)
	assert.False(t, artifact.GeneratedAt.IsZero())
	assert.Equal(t, "BOM", artifact.Request.Origin)
}

func TestPlanRejectsInvalidRequestBeforeBackendRuns(t *testing.T) {
	backend := &fakeBackend{err: assert.AnError}
	session := testSession(t, backend, nil)

	req := testRequest(5)
	req.Days = 0

	_, err := session.Plan(context.Background(), req)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestPlanSurfacesIncompleteResult(t *testing.T) {
	session := testSession(t, &fakeBackend{output: "no JSON here"}, nil)

	_, err := session.Plan(context.Background(), testRequest(5))
	require.Error(t, err)
	assert.True(t, models.IsIncompleteResult(err))
}

func TestPlanMapsDeadlineToOrchestrationTimeout(t *testing.T) {
	session := testSession(t, &fakeBackend{delay: 5 * time.Second}, nil)
	session.Cfg = &config.Config{PlanTimeoutSeconds: 1}

	started := time.Now()
	artifact, err := session.Plan(context.Background(), testRequest(5))
	require.Error(t, err)

	assert.Nil(t, artifact, "no partial artifact on timeout")
	assert.True(t, models.IsOrchestrationTimeout(err))
	assert.Less(t, time.Since(started), 3*time.Second)
}

func TestPlanAttachesNoticeForUnreachableTool(t *testing.T) {
	reg := registry.NewWithCredentials(nil)
	require.NoError(t, reg.Register(models.ToolDescriptor{
		Name:    "flight-search",
		Remote:  &models.RemoteHTTP{URL: "http://127.0.0.1:1/mcp"},
		Timeout: 2 * time.Second,
	}))
	reg.Freeze()

	session := testSession(t, &fakeBackend{output: itineraryJSON(2)}, reg)

	artifact, err := session.Plan(context.Background(), testRequest(2))
	require.NoError(t, err, "an unreachable tool must not abort the run")

	require.Len(t, artifact.Notices, 1)
	assert.Equal(t, "flight-search", artifact.Notices[0].Tool)
	assert.Contains(t, artifact.Notices[0].Message, "unavailable")
}

func TestPlanPassesBackendErrorThrough(t *testing.T) {
	session := testSession(t, &fakeBackend{err: assert.AnError}, nil)

	_, err := session.Plan(context.Background(), testRequest(5))
	require.ErrorIs(t, err, assert.AnError)
}
