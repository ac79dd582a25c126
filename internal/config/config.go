// Package config provides configuration for the chloe API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Identity service
	AuthURL     string
	AuthTimeout time.Duration

	// LLM settings
	LLMBaseURL string
	LLMAPIKey  string
	LLMTimeout time.Duration

	// Completion parameters (fixed, never request-controllable)
	Completion CompletionParams

	// HistoryWindow is the maximum number of stored messages included in
	// an assembled completion context.
	HistoryWindow int

	// Logging
	LogLevel string
}

// CompletionParams are the generation parameters sent with every
// completion call.
type CompletionParams struct {
	Model           string
	Temperature     float64
	TopP            float64
	MaxTokens       int
	ReasoningEffort string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DatabaseURL: getEnv("DATABASE_URL", "file:chloe.db?cache=shared&mode=rwc"),
		AuthURL:     getEnv("AUTH_URL", ""),
		AuthTimeout: time.Duration(getEnvInt("AUTH_TIMEOUT_MS", 5000)) * time.Millisecond,
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMTimeout:  time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		Completion: CompletionParams{
			Model:           getEnv("LLM_MODEL", "gpt-5-mini"),
			Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.8),
			TopP:            getEnvFloat("LLM_TOP_P", 0.9),
			MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1024),
			ReasoningEffort: getEnv("LLM_REASONING_EFFORT", "low"),
		},
		HistoryWindow: getEnvInt("HISTORY_WINDOW", 20),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
