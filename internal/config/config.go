package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	LogLevel    string
	Environment string
	CORSOrigins string

	// DotEnvLoaded reports whether a .env file was read.
	DotEnvLoaded bool

	CSVURL             string
	VerticalCSVURL     string
	CSVRefreshInterval time.Duration
	CSVFetchTimeout    time.Duration

	// DatabaseURL and RedisURL are optional; empty disables history and caching.
	DatabaseURL    string
	RedisURL       string
	ReportCacheTTL time.Duration

	LLMBaseURL           string
	LLMAPIKey            string
	LLMModel             string
	LLMTemperature       float64
	LLMTimeout           time.Duration
	LLMRatePerMinute     int
	LLMPromptTokenBudget int

	InferenceURL   string
	InferenceToken string
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		DotEnvLoaded: loaded,

		CSVURL:             getEnv("CSV_URL", ""),
		VerticalCSVURL:     getEnv("VERTICAL_CSV_URL", ""),
		CSVRefreshInterval: getEnvDuration("CSV_REFRESH_INTERVAL", 15*time.Minute),
		CSVFetchTimeout:    getEnvDuration("CSV_FETCH_TIMEOUT", 30*time.Second),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL", 10*time.Minute),

		LLMBaseURL:           getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:            getEnv("LLM_API_KEY", ""),
		LLMModel:             getEnv("LLM_MODEL", "gpt-4o"),
		LLMTemperature:       getEnvFloat("LLM_TEMPERATURE", 0.3),
		LLMTimeout:           getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		LLMRatePerMinute:     getEnvInt("LLM_RATE_PER_MIN", 20),
		LLMPromptTokenBudget: getEnvInt("LLM_PROMPT_TOKEN_BUDGET", 60000),

		InferenceURL:   getEnv("INFERENCE_URL", ""),
		InferenceToken: getEnv("INFERENCE_TOKEN", ""),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SheetURLs maps each sheet source to its published CSV URL.
func (c *Config) SheetURLs() map[string]string {
	return map[string]string{
		"main":     c.CSVURL,
		"vertical": c.VerticalCSVURL,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
