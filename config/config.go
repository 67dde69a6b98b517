package config

import (
	"log"
	"time"

	"github.com/spf13/viper"

	"voyago/models"
)

// Config holds all configuration values. It is constructed once at startup
// and passed by reference into the registry, planner, and handlers; there is
// no ambient global lookup.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Planner backend selection and credentials.
	PlannerBackend string `mapstructure:"PLANNER_BACKEND"` // "openai" or "gemini"
	OpenAIKey      string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel    string `mapstructure:"OPENAI_MODEL"`
	GeminiKey      string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`

	// Tool credentials.
	GoogleMapsKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	SerpAPIKey    string `mapstructure:"SERPAPI_KEY"`

	// Tool transports.
	FlightMCPURL string `mapstructure:"FLIGHT_MCP_URL"`

	// Orchestration limits.
	PlanTimeoutSeconds int `mapstructure:"PLAN_TIMEOUT_SECONDS"`
	ToolTimeoutSeconds int `mapstructure:"TOOL_TIMEOUT_SECONDS"`
	MaxToolRounds      int `mapstructure:"MAX_TOOL_ROUNDS"`

	// Itinerary store. Redis is used when REDIS_ADDR is set; otherwise an
	// in-memory TTL cache.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int    `mapstructure:"REDIS_DB"`
	ItineraryTTLMinutes int    `mapstructure:"ITINERARY_TTL_MINUTES"`
}

// Load reads configuration from a config file and the environment.
func Load() (*Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 20)
	viper.SetDefault("PLANNER_BACKEND", "openai")
	// Secrets default to empty so AutomaticEnv can bind them during Unmarshal.
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("SERPAPI_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("FLIGHT_MCP_URL", "http://localhost:8001/mcp")
	viper.SetDefault("PLAN_TIMEOUT_SECONDS", 60)
	viper.SetDefault("TOOL_TIMEOUT_SECONDS", 20)
	viper.SetDefault("MAX_TOOL_ROUNDS", 8)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ITINERARY_TTL_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireCredentials verifies that every secret the configured backend and
// tools depend on is present. It is called at startup so a missing key is
// fatal before any planning call is attempted.
func (c *Config) RequireCredentials() error {
	switch c.PlannerBackend {
	case "openai":
		if c.OpenAIKey == "" {
			return models.ConfigurationError{Key: "OPENAI_API_KEY"}
		}
	case "gemini":
		if c.GeminiKey == "" {
			return models.ConfigurationError{Key: "GEMINI_API_KEY"}
		}
	default:
		return models.ConfigurationError{Key: "PLANNER_BACKEND", Msg: "must be \"openai\" or \"gemini\""}
	}
	if c.GoogleMapsKey == "" {
		return models.ConfigurationError{Key: "GOOGLE_MAPS_API_KEY"}
	}
	if c.SerpAPIKey == "" {
		return models.ConfigurationError{Key: "SERPAPI_KEY"}
	}
	return nil
}

// CredentialValues maps credential names to their configured values, for
// the tool registry's presence checks.
func (c *Config) CredentialValues() map[string]string {
	return map[string]string{
		"OPENAI_API_KEY":      c.OpenAIKey,
		"GEMINI_API_KEY":      c.GeminiKey,
		"GOOGLE_MAPS_API_KEY": c.GoogleMapsKey,
		"SERPAPI_KEY":         c.SerpAPIKey,
	}
}

func (c *Config) PlanTimeout() time.Duration {
	return time.Duration(c.PlanTimeoutSeconds) * time.Second
}

func (c *Config) ToolTimeout() time.Duration {
	return time.Duration(c.ToolTimeoutSeconds) * time.Second
}

func (c *Config) ItineraryTTL() time.Duration {
	return time.Duration(c.ItineraryTTLMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
