// Package config provides configuration loading and validation for the
// scoring pipeline. Values come from an optional JSON file, with
// environment variables (including a .env file) taking precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/jonathan/hiring-agent/internal/llm"
)

// Config is the full pipeline configuration. All fields are optional;
// missing values use defaults.
type Config struct {
	// Scoring engine
	Provider string `json:"provider,omitempty"` // "ollama" or "gemini"
	Model    string `json:"model,omitempty"`    // Model name for the chosen provider
	APIKey   string `json:"api_key,omitempty"`  // Gemini API key
	Host     string `json:"host,omitempty"`     // Ollama host URL

	// Code-hosting enrichment
	GitHubToken   string `json:"github_token,omitempty"`    // Optional API token for higher rate limits
	GitHubBaseURL string `json:"github_base_url,omitempty"` // Override for tests and GitHub Enterprise
	CacheDir      string `json:"cache_dir,omitempty"`       // Replay cache directory; empty disables caching

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug-level logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	llmDefaults := llm.DefaultConfig()
	return Config{
		Provider:   string(llmDefaults.Provider),
		Model:      llmDefaults.Model,
		Host:       llmDefaults.Host,
		ListenAddr: ":8080",
	}
}

// Load reads configuration from an optional JSON file path, then applies
// environment overrides, then fills remaining gaps from defaults. A .env
// file in the working directory is honored if present.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()
	cfg.applyEnv()

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func loadFile(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Provider, "HIRING_AGENT_PROVIDER")
	setString(&c.Model, "HIRING_AGENT_MODEL")
	setString(&c.APIKey, "GEMINI_API_KEY")
	setString(&c.Host, "OLLAMA_HOST")
	setString(&c.GitHubToken, "GITHUB_TOKEN")
	setString(&c.GitHubBaseURL, "HIRING_AGENT_GITHUB_BASE_URL")
	setString(&c.CacheDir, "HIRING_AGENT_CACHE_DIR")
	setString(&c.ListenAddr, "HIRING_AGENT_ADDR")
	if v := os.Getenv("HIRING_AGENT_VERBOSE"); v == "1" || v == "true" {
		c.Verbose = true
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case llm.ProviderOllama:
		if c.Host == "" {
			return fmt.Errorf("config error: 'host' is required for the ollama provider")
		}
	case llm.ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("config error: 'api_key' is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("config error: 'model' must not be empty")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config error: 'listen_addr' must not be empty")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.GitHubBaseURL == "" {
		result.GitHubBaseURL = defaults.GitHubBaseURL
	}
	if result.CacheDir == "" {
		result.CacheDir = defaults.CacheDir
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	return result
}

// LLMConfig converts the pipeline configuration into a scoring-engine
// client configuration.
func (c *Config) LLMConfig() *llm.Config {
	return &llm.Config{
		Provider: llm.Provider(c.Provider),
		Model:    c.Model,
		APIKey:   c.APIKey,
		Host:     c.Host,
	}
}
