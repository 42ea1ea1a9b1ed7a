package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	PostgreSQL PostgreSQLConfig
	Apify      ApifyConfig
	Geocoding  GeocodingConfig
	OpenAI     OpenAIConfig
	Agent      AgentConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// PostgreSQLConfig holds PostgreSQL database configuration.
// Persistence is optional: with an empty DSN, run results are only
// returned to the caller and never stored.
type PostgreSQLConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// ApifyConfig holds scraping platform configuration
type ApifyConfig struct {
	Token        string
	APIBase      string
	SearchActor  string // actor producing listing search results
	DetailActor  string // actor producing per-property detail payloads
	SearchMemory int    // MB
	DetailMemory int    // MB
	MaxItems     int    // cost/latency control on listing collection
	Timeout      int    // seconds, per actor run
	Enabled      bool
}

// GeocodingConfig holds OpenCage geocoding configuration
type GeocodingConfig struct {
	APIKey  string
	APIBase string
	Timeout int // seconds
	Enabled bool
}

// OpenAIConfig holds OpenAI-compatible API configuration
type OpenAIConfig struct {
	APIKey       string
	APIBase      string
	ExtractModel string // model for search parameter extraction
	AgentModel   string // model for property recommendation
	Temperature  float64
	MaxTokens    int
	Timeout      int // seconds
	Enabled      bool
}

// AgentConfig holds pipeline-level configuration
type AgentConfig struct {
	DescriptionExcerptLen int
	MaxReportFeatures     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			Enabled:            getEnv("DATABASE_URL", getEnv("PG_DSN", "")) != "",
		},
		Apify: ApifyConfig{
			Token:        getEnv("APIFY_API_KEY", ""),
			APIBase:      getEnv("APIFY_API_BASE", "https://api.apify.com/v2"),
			SearchActor:  getEnv("APIFY_SEARCH_ACTOR", "maxcopell~zillow-scraper"),
			DetailActor:  getEnv("APIFY_DETAIL_ACTOR", "maxcopell~zillow-detail-scraper"),
			SearchMemory: getEnvAsInt("APIFY_SEARCH_MEMORY_MB", 512),
			DetailMemory: getEnvAsInt("APIFY_DETAIL_MEMORY_MB", 1024),
			MaxItems:     getEnvAsInt("APIFY_MAX_ITEMS", 100),
			Timeout:      getEnvAsInt("APIFY_TIMEOUT", 300),
			Enabled:      getEnv("APIFY_API_KEY", "") != "",
		},
		Geocoding: GeocodingConfig{
			APIKey:  getEnv("OPENCAGE_API_KEY", ""),
			APIBase: getEnv("OPENCAGE_API_BASE", "https://api.opencagedata.com"),
			Timeout: getEnvAsInt("OPENCAGE_TIMEOUT", 10),
			Enabled: getEnv("OPENCAGE_API_KEY", "") != "",
		},
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			APIBase:      getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ExtractModel: getEnv("OPENAI_EXTRACT_MODEL", "gpt-4o"),
			AgentModel:   getEnv("OPENAI_AGENT_MODEL", "gpt-4o"),
			Temperature:  getEnvAsFloat("OPENAI_TEMPERATURE", 0),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 8192),
			Timeout:      getEnvAsInt("OPENAI_TIMEOUT", 120),
			Enabled:      getEnv("OPENAI_API_KEY", "") != "",
		},
		Agent: AgentConfig{
			DescriptionExcerptLen: getEnvAsInt("AGENT_DESCRIPTION_EXCERPT_LEN", 300),
			MaxReportFeatures:     getEnvAsInt("AGENT_MAX_REPORT_FEATURES", 10),
		},
	}

	return cfg, nil
}

// Validate checks that the required collaborators are configured
func (c *Config) Validate() error {
	if !c.OpenAI.Enabled {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if !c.Apify.Enabled {
		return fmt.Errorf("APIFY_API_KEY is required")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
