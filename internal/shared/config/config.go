package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMProvider string
	LLMTimeout  time.Duration

	FetchTimeout time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	LogQueueDepth int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local .env for dev convenience.
	_ = godotenv.Load()

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:     dbURL,
		LLMAPIKey:       getEnv("GROQ_API_KEY", ""),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:        getEnv("AI_MODEL_NAME", "llama-3.3-70b-versatile"),
		LLMProvider:     getEnv("LLM_PROVIDER", "groq"),
		LLMTimeout:      getEnvSeconds("LLM_TIMEOUT_SECONDS", 60*time.Second),
		FetchTimeout:    getEnvSeconds("FETCH_TIMEOUT_SECONDS", 30*time.Second),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 5),
		RateLimitWindow: getEnvSeconds("RATE_LIMIT_WINDOW_SECONDS", 60*time.Second),
		LogQueueDepth:   getEnvInt("LOG_QUEUE_DEPTH", 64),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid int %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid seconds %q, using default", key, raw)
		return def
	}
	return time.Duration(val) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
