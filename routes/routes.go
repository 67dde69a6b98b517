package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/handlers"
)

// CORSConfig returns the CORS policy for the API.
func CORSConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// RegisterTripRoutes registers planning and itinerary endpoints.
func RegisterTripRoutes(r *gin.Engine, h *handlers.PlannerHandler) {
	api := r.Group("/api/trips")
	{
		api.POST("/plan", h.PlanTripHandler)
		api.GET("/:id", h.GetItineraryHandler)
		api.GET("/:id/calendar.ics", h.ExportCalendarHandler)
	}
}

// RegisterToolRoutes registers tool-registry endpoints.
func RegisterToolRoutes(r *gin.Engine, h *handlers.PlannerHandler) {
	api := r.Group("/api/tools")
	{
		api.GET("", h.ListToolsHandler)
	}
}

// RegisterSystemRoutes registers the form page and health check.
func RegisterSystemRoutes(r *gin.Engine, h *handlers.PlannerHandler) {
	r.GET("/", h.IndexHandler)
	r.GET("/healthz", h.HealthHandler)
}

// RegisterRoutes wires every route group.
func RegisterRoutes(r *gin.Engine, h *handlers.PlannerHandler) {
	RegisterTripRoutes(r, h)
	RegisterToolRoutes(r, h)
	RegisterSystemRoutes(r, h)
}
