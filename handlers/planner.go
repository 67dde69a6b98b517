package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/itinerary"
	"voyago/services/planner"
	"voyago/services/registry"
	"voyago/utils"
)

// PlannerHandler exposes the planning run, stored itineraries, and the
// calendar export over HTTP.
type PlannerHandler struct {
	Cfg      *config.Config
	Planner  planner.PlannerService
	Registry *registry.Registry
	Store    itinerary.Store
	Renderer *itinerary.Renderer
}

func NewPlannerHandler(cfg *config.Config, svc planner.PlannerService, reg *registry.Registry, store itinerary.Store, renderer *itinerary.Renderer) *PlannerHandler {
	return &PlannerHandler{Cfg: cfg, Planner: svc, Registry: reg, Store: store, Renderer: renderer}
}

// PlanTripHandler runs one planning session for the submitted trip request.
func (h *PlannerHandler) PlanTripHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid trip request", err.Error())
		return
	}

	artifact, err := h.Planner.Plan(c.Request.Context(), req)
	if err != nil {
		h.writePlanError(c, err)
		return
	}

	if err := h.Store.Put(c.Request.Context(), artifact); err != nil {
		// Display still works without the store; only the later calendar
		// download is affected.
		logger.Warn("Failed to store itinerary", zap.String("itineraryId", artifact.ID), zap.Error(err))
	}

	markdown, err := h.Renderer.Render(artifact)
	if err != nil {
		logger.Error("Failed to render itinerary", zap.String("itineraryId", artifact.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to render itinerary", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itinerary": artifact,
		"markdown":  markdown,
		"notices":   artifact.Notices,
	})
}

// GetItineraryHandler returns a stored artifact by id.
func (h *PlannerHandler) GetItineraryHandler(c *gin.Context) {
	artifact, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, itinerary.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Itinerary not found", "it may have expired; plan the trip again")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load itinerary", err.Error())
		return
	}
	c.JSON(http.StatusOK, artifact)
}

// ExportCalendarHandler serves the ICS download for a stored artifact.
func (h *PlannerHandler) ExportCalendarHandler(c *gin.Context) {
	artifact, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, itinerary.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Itinerary not found", "it may have expired; plan the trip again")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load itinerary", err.Error())
		return
	}

	data, err := h.Renderer.ExportCalendar(artifact)
	if err != nil {
		if models.IsExport(err) {
			utils.JSONError(c, http.StatusConflict, "Calendar export unavailable", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Calendar export failed", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="travel_itinerary.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// writePlanError maps the planning error taxonomy onto HTTP responses.
func (h *PlannerHandler) writePlanError(c *gin.Context, err error) {
	logger := utils.GetLogger()

	switch {
	case models.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "Invalid trip request", err.Error())
	case models.IsOrchestrationTimeout(err):
		utils.JSONError(c, http.StatusGatewayTimeout, "Planning run timed out", "please try again; a retry usually succeeds")
	case models.IsIncompleteResult(err):
		var incomplete models.IncompleteResultError
		errors.As(err, &incomplete)
		logger.Error("Planner returned an incomplete itinerary", zap.String("reason", incomplete.Reason))
		c.JSON(http.StatusBadGateway, gin.H{
			"message":   "The planner returned an incomplete itinerary",
			"details":   incomplete.Reason,
			"rawOutput": incomplete.RawOutput,
		})
	case models.IsToolUnavailable(err):
		utils.JSONError(c, http.StatusBadGateway, "Travel tools unreachable", err.Error())
	case models.IsConfiguration(err):
		utils.JSONError(c, http.StatusServiceUnavailable, "Planner is not configured", err.Error())
	default:
		logger.Error("Planning run failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Planning run failed", err.Error())
	}
}
