package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/models"
)

// toolView is the public shape of a descriptor: credential names are
// listed, credential values never leave the process.
type toolView struct {
	Name                string   `json:"name"`
	Transport           string   `json:"transport"`
	Endpoint            string   `json:"endpoint,omitempty"`
	Command             string   `json:"command,omitempty"`
	RequiredCredentials []string `json:"requiredCredentials,omitempty"`
	TimeoutSeconds      float64  `json:"timeoutSeconds"`
}

// ListToolsHandler reports the registered tool integrations.
func (h *PlannerHandler) ListToolsHandler(c *gin.Context) {
	descriptors := h.Registry.List()
	views := make([]toolView, 0, len(descriptors))
	for _, d := range descriptors {
		kind, err := d.Kind()
		if err != nil {
			continue
		}
		view := toolView{
			Name:                d.Name,
			Transport:           string(kind),
			RequiredCredentials: d.RequiredCredentials,
			TimeoutSeconds:      d.Timeout.Seconds(),
		}
		switch kind {
		case models.TransportRemoteHTTP:
			view.Endpoint = d.Remote.URL
		case models.TransportLocalCommand:
			view.Command = d.Local.Command
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"tools": views})
}
