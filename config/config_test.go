package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("MCP_SAFE_DIR", "")
	t.Setenv("TAVILY_API_KEY", "")

	cfg := Load()

	assert.Empty(t, cfg.TelegramToken)
	assert.Equal(t, "http://localhost:11434/api/chat", cfg.OllamaURL)
	assert.Equal(t, "qwen3-coder:30b", cfg.OllamaModel)
	assert.Equal(t, "./mcp_workspace", cfg.SandboxDir)
	assert.Empty(t, cfg.TavilyAPIKey)
	assert.Equal(t, "urn:ietf:wg:oauth:2.0:oob", cfg.GoogleRedirectURL)
	assert.Equal(t, "google_token.json", cfg.GoogleTokenFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("OLLAMA_MODEL", "llama3.2")
	t.Setenv("MCP_SAFE_DIR", "/tmp/sandbox")
	t.Setenv("TAVILY_API_KEY", "tvly-key")

	cfg := Load()

	assert.Equal(t, "tg-token", cfg.TelegramToken)
	assert.Equal(t, "llama3.2", cfg.OllamaModel)
	assert.Equal(t, "/tmp/sandbox", cfg.SandboxDir)
	assert.Equal(t, "tvly-key", cfg.TavilyAPIKey)
}
