// Package registry declares which external travel tools are available to a
// planning run and verifies their credentials at startup.
package registry

import (
	"sync"

	"voyago/config"
	"voyago/models"
)

// Registry holds the tool descriptors for the process. It is populated once
// at startup and frozen before the first planning run; List is safe for
// concurrent use afterwards.
type Registry struct {
	mu     sync.RWMutex
	creds  map[string]string
	tools  []models.ToolDescriptor
	frozen bool
}

// NewWithCredentials returns an empty registry that resolves required
// credentials against the given values.
func NewWithCredentials(creds map[string]string) *Registry {
	if creds == nil {
		creds = map[string]string{}
	}
	return &Registry{creds: creds}
}

// New builds the default registry from configuration: the remote flight
// search server plus the local Airbnb and travel-maps servers. It fails with
// a ConfigurationError when a required credential is missing.
func New(cfg *config.Config) (*Registry, error) {
	r := NewWithCredentials(cfg.CredentialValues())

	defaults := []models.ToolDescriptor{
		{
			Name:                "flight-search",
			Remote:              &models.RemoteHTTP{URL: cfg.FlightMCPURL},
			RequiredCredentials: []string{"SERPAPI_KEY"},
			Timeout:             cfg.ToolTimeout(),
		},
		{
			Name: "airbnb",
			Local: &models.LocalCommand{
				Command: "npx",
				Args:    []string{"-y", "@openbnb/mcp-server-airbnb", "--ignore-robots-txt"},
			},
			Timeout: cfg.ToolTimeout(),
		},
		{
			Name: "travel-maps",
			Local: &models.LocalCommand{
				Command: "npx",
				Args:    []string{"-y", "@gongrzhe/server-travelplanner-mcp"},
			},
			Env:                 map[string]string{"GOOGLE_MAPS_API_KEY": cfg.GoogleMapsKey},
			RequiredCredentials: []string{"GOOGLE_MAPS_API_KEY"},
			Timeout:             cfg.ToolTimeout(),
		},
	}

	for _, d := range defaults {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	r.Freeze()
	return r, nil
}

// Register adds a descriptor after checking its transport shape and the
// presence of every required credential.
func (r *Registry) Register(d models.ToolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return models.ConfigurationError{Msg: "tool registry is frozen; tools register at startup only"}
	}
	if _, err := d.Kind(); err != nil {
		return models.ConfigurationError{Msg: err.Error(), Err: err}
	}
	for _, existing := range r.tools {
		if existing.Name == d.Name {
			return models.ConfigurationError{Key: d.Name, Msg: "tool registered twice"}
		}
	}
	for _, key := range d.RequiredCredentials {
		if r.creds[key] == "" {
			return models.ConfigurationError{Key: key, Msg: "required by tool " + d.Name}
		}
	}

	r.tools = append(r.tools, d)
	return nil
}

// Freeze marks initialization as complete; later Register calls fail.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// List returns a copy of the registered descriptors in registration order.
func (r *Registry) List() []models.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ToolDescriptor, len(r.tools))
	copy(out, r.tools)
	return out
}
