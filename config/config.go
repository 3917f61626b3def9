// Package config provides configuration management for the assistant.
package config

import (
	"os"
)

// Config holds all application configuration.
type Config struct {
	TelegramToken     string
	OllamaURL         string
	OllamaModel       string
	SandboxDir        string
	TavilyAPIKey      string
	SerperAPIKey      string
	GoogleClientID    string
	GoogleSecret      string
	GoogleRedirectURL string
	GoogleTokenFile   string
}

// Load reads configuration from environment variables with sensible defaults.
// Research credentials are optional: when TAVILY_API_KEY is empty the research
// client runs in mock mode instead of failing.
func Load() *Config {
	return &Config{
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		OllamaURL:         getEnvOrDefault("OLLAMA_URL", "http://localhost:11434/api/chat"),
		OllamaModel:       getEnvOrDefault("OLLAMA_MODEL", "qwen3-coder:30b"),
		SandboxDir:        getEnvOrDefault("MCP_SAFE_DIR", "./mcp_workspace"),
		TavilyAPIKey:      os.Getenv("TAVILY_API_KEY"),
		SerperAPIKey:      os.Getenv("SERPER_API_KEY"),
		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:      os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL: getEnvOrDefault("GOOGLE_REDIRECT_URL", "urn:ietf:wg:oauth:2.0:oob"),
		GoogleTokenFile:   getEnvOrDefault("GOOGLE_TOKEN_FILE", "google_token.json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
