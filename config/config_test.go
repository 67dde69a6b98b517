package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

func fullConfig() *Config {
	return &Config{
		PlannerBackend: "openai",
		OpenAIKey:      "sk-test",
		GeminiKey:      "gm-test",
		GoogleMapsKey:  "maps-test",
		SerpAPIKey:     "serp-test",
	}
}

func TestRequireCredentials(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*Config)
		missingKey string
	}{
		{"all present", func(c *Config) {}, ""},
		{"openai key missing", func(c *Config) { c.OpenAIKey = "" }, "OPENAI_API_KEY"},
		{"gemini backend ignores openai key", func(c *Config) {
			c.PlannerBackend = "gemini"
			c.OpenAIKey = ""
		}, ""},
		{"gemini key missing", func(c *Config) {
			c.PlannerBackend = "gemini"
			c.GeminiKey = ""
		}, "GEMINI_API_KEY"},
		{"maps key missing", func(c *Config) { c.GoogleMapsKey = "" }, "GOOGLE_MAPS_API_KEY"},
		{"serpapi key missing", func(c *Config) { c.SerpAPIKey = "" }, "SERPAPI_KEY"},
		{"unknown backend", func(c *Config) { c.PlannerBackend = "llama" }, "PLANNER_BACKEND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := fullConfig()
			tc.mutate(cfg)

			err := cfg.RequireCredentials()
			if tc.missingKey == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, models.IsConfiguration(err))
			var confErr models.ConfigurationError
			require.ErrorAs(t, err, &confErr)
			assert.Equal(t, tc.missingKey, confErr.Key)
		})
	}
}

func TestCredentialValues(t *testing.T) {
	values := fullConfig().CredentialValues()

	assert.Equal(t, "serp-test", values["SERPAPI_KEY"])
	assert.Equal(t, "maps-test", values["GOOGLE_MAPS_API_KEY"])
	assert.Equal(t, "sk-test", values["OPENAI_API_KEY"])
	assert.Equal(t, "gm-test", values["GEMINI_API_KEY"])
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{
		PlanTimeoutSeconds:  60,
		ToolTimeoutSeconds:  20,
		ItineraryTTLMinutes: 120,
	}

	assert.Equal(t, time.Minute, cfg.PlanTimeout())
	assert.Equal(t, 20*time.Second, cfg.ToolTimeout())
	assert.Equal(t, 2*time.Hour, cfg.ItineraryTTL())
}

func TestIsProduction(t *testing.T) {
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.True(t, (&Config{Env: "production"}).IsProduction())
}
