package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// IndexHandler serves the single-page trip form.
func (h *PlannerHandler) IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Backend": h.Cfg.PlannerBackend,
	})
}

// HealthHandler reports liveness, store reachability, and basic runtime info.
func (h *PlannerHandler) HealthHandler(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":  "ok",
		"backend": h.Cfg.PlannerBackend,
		"store":   "ok",
		"uptime":  time.Since(startedAt).Round(time.Second).String(),
		"tools":   len(h.Registry.List()),
	}

	// The in-memory store is always reachable; Redis answers a ping.
	if pinger, ok := h.Store.(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["store"] = "unreachable"
		}
	}

	c.JSON(status, body)
}
