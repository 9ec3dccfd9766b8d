package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration. Secrets (API keys) are read from the
// environment or from a .env file at startup; never committed.
type Config struct {
	// GroqAPIKey is set from env GROQ_API_KEY. Required.
	GroqAPIKey string
	// GroqBaseURL is the OpenAI-compatible endpoint, overridable via GROQ_BASE_URL.
	GroqBaseURL string
	// Model is the Groq model id (e.g. llama-3.3-70b-versatile).
	Model string
	// Temperature for chat completions.
	Temperature float64
	// MaxIterations caps model round trips per conversation turn.
	MaxIterations int

	// DryRunMode, when true, forces dry_run=true on all booking tools.
	DryRunMode bool

	// AuditLogPath is the JSONL audit trail file.
	AuditLogPath string
	// DBPath is the sqlite database for the audit mirror and bookings.
	DBPath string

	// FlightAPIKey enables live flight lookups via FlightAPI; empty means
	// mock data only.
	FlightAPIKey string
	// SearchAPIKey enables live hotel lookups via SearchAPI google_hotels.
	SearchAPIKey string
	// HFAPIToken enables the Hugging Face itinerary planner model.
	HFAPIToken string
}

const (
	defaultBaseURL    = "https://api.groq.com/openai/v1"
	defaultModel      = "llama-3.3-70b-versatile"
	defaultAuditPath  = "audit_log.jsonl"
	defaultDBPath     = "travel_agent.db"
	defaultIterations = 10
)

// Load builds config from the environment, applying a .env file first if one
// exists in the working directory. Returns an error when GROQ_API_KEY is unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:   envOr("GROQ_BASE_URL", defaultBaseURL),
		Model:         envOr("TRAVEL_AGENT_MODEL", defaultModel),
		Temperature:   0.7,
		MaxIterations: defaultIterations,
		DryRunMode:    envBool("TRAVEL_AGENT_DRY_RUN", true),
		AuditLogPath:  envOr("TRAVEL_AGENT_AUDIT_LOG", defaultAuditPath),
		DBPath:        envOr("TRAVEL_AGENT_DB", defaultDBPath),
		FlightAPIKey:  os.Getenv("FLIGHTAPI_KEY"),
		SearchAPIKey:  os.Getenv("SEARCHAPI_KEY"),
		HFAPIToken:    os.Getenv("HF_API_TOKEN"),
	}
	if v := os.Getenv("TRAVEL_AGENT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("TRAVEL_AGENT_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxIterations = n
		}
	}
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set; add it to the environment or a .env file")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
