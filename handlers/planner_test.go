package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/itinerary"
	"voyago/services/registry"
	"voyago/web"
)

// stubPlanner scripts the planner outcome for handler tests.
type stubPlanner struct {
	artifact *models.ItineraryArtifact
	err      error
}

func (s *stubPlanner) Plan(_ context.Context, req models.TripRequest) (*models.ItineraryArtifact, error) {
	if s.err != nil {
		return nil, s.err
	}
	artifact := *s.artifact
	artifact.Request = req
	return &artifact, nil
}

func testArtifact() *models.ItineraryArtifact {
	return &models.ItineraryArtifact{
		ID: "itinerary-1",
		Request: models.TripRequest{
			Origin: "BOM", Destination: "DEL", StartDate: "2026-09-01", Days: 2, BudgetUSD: 1000,
		},
		Days: []models.DayPlan{
			{Day: 1, Activities: []models.Activity{{Time: "09:00", Description: "Red Fort", CostUSD: 8}}},
			{Day: 2, Activities: []models.Activity{{Description: "Lodhi Garden walk"}}},
		},
		TotalCostUSD: 150,
		GeneratedAt:  time.Now().UTC(),
	}
}

func testRouter(t *testing.T, planner *stubPlanner) (*gin.Engine, *PlannerHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		PlannerBackend:     "openai",
		OpenAIKey:          "sk-test",
		GoogleMapsKey:      "maps-test",
		SerpAPIKey:         "serp-test",
		FlightMCPURL:       "http://localhost:8001/mcp",
		ToolTimeoutSeconds: 20,
	}
	reg, err := registry.New(cfg)
	require.NoError(t, err)

	h := NewPlannerHandler(cfg, planner, reg,
		itinerary.NewMemoryStore(time.Minute),
		&itinerary.Renderer{Logger: zap.NewNop()})

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))
	router.GET("/", h.IndexHandler)
	router.GET("/healthz", h.HealthHandler)
	router.GET("/api/tools", h.ListToolsHandler)
	router.POST("/api/trips/plan", h.PlanTripHandler)
	router.GET("/api/trips/:id", h.GetItineraryHandler)
	router.GET("/api/trips/:id/calendar.ics", h.ExportCalendarHandler)
	return router, h
}

func planBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(models.TripRequest{
		Origin: "BOM", Destination: "DEL", StartDate: "2026-09-01", Days: 2, BudgetUSD: 1000,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestPlanTripHandler(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", planBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Itinerary models.ItineraryArtifact `json:"itinerary"`
		Markdown  string                   `json:"markdown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "itinerary-1", resp.Itinerary.ID)
	assert.Len(t, resp.Itinerary.Days, 2)
	assert.Contains(t, resp.Markdown, "# Trip: BOM → DEL")
}

func TestPlanTripHandlerStoresArtifactForDownload(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", planBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/itinerary-1/calendar.ics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "travel_itinerary.ics")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}

func TestPlanTripHandlerRejectsMalformedBody(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanTripHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.ValidationError{Field: "days", Msg: "trip duration must be positive"}, http.StatusBadRequest},
		{"timeout", models.OrchestrationTimeoutError{Timeout: time.Minute}, http.StatusGatewayTimeout},
		{"incomplete", models.IncompleteResultError{Reason: "bad shape", RawOutput: "raw"}, http.StatusBadGateway},
		{"tool unavailable", models.ToolUnavailableError{Tool: "flight-search"}, http.StatusBadGateway},
		{"configuration", models.ConfigurationError{Key: "OPENAI_API_KEY"}, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := testRouter(t, &stubPlanner{err: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", planBody(t))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestPlanTripHandlerIncludesRawOutputForIncompleteResult(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{err: models.IncompleteResultError{Reason: "bad shape", RawOutput: "model said no"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", planBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "model said no")
}

func TestGetItineraryHandlerUnknownID(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCalendarHandlerEmptyItinerary(t *testing.T) {
	router, h := testRouter(t, &stubPlanner{artifact: testArtifact()})

	empty := testArtifact()
	empty.ID = "empty-itinerary"
	empty.Days = nil
	require.NoError(t, h.Store.Put(context.Background(), empty))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/empty-itinerary/calendar.ics", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListToolsHandlerHidesCredentialValues(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tools", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flight-search")
	assert.Contains(t, w.Body.String(), "GOOGLE_MAPS_API_KEY")
	assert.NotContains(t, w.Body.String(), "maps-test")
	assert.NotContains(t, w.Body.String(), "serp-test")
}

func TestIndexAndHealth(t *testing.T) {
	router, _ := testRouter(t, &stubPlanner{artifact: testArtifact()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Voyago")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"store":"ok"`)
}

// pingFailingStore reports unreachable on every health ping.
type pingFailingStore struct {
	itinerary.Store
}

func (pingFailingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthReportsUnreachableStore(t *testing.T) {
	router, h := testRouter(t, &stubPlanner{artifact: testArtifact()})
	h.Store = pingFailingStore{Store: h.Store}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"unreachable"`)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}
