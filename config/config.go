package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Extraction strategies accepted by ExtractMode.
const (
	ExtractMarkdown    = "markdown"
	ExtractArticle     = "article"
	ExtractReadability = "readability"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config carries every tunable of the research pipeline. The zero value
// is not usable; build one through Load, LoadFile or Default.
type Config struct {
	// SerpAPIKey authenticates search requests. Its absence is reported
	// by the search stage, not at load time.
	SerpAPIKey string `yaml:"serpapi_key"`
	// OpenAIAPIKey authenticates model calls.
	OpenAIAPIKey string `yaml:"openai_api_key"`

	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	SearchLocation string  `yaml:"search_location"`
	TopURLCount    int     `yaml:"top_url_count"`
	URLField       string  `yaml:"url_field"`

	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	MaxConcurrency int    `yaml:"max_concurrency"`
	ExtractMode    string `yaml:"extract_mode"`
	UserAgent      string `yaml:"user_agent"`

	// FetchTimeout bounds a single page load. Zero means no limit.
	// Set through FETCH_TIMEOUT (a Go duration string) or in code.
	FetchTimeout time.Duration `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:          "gpt-5",
		Temperature:    0,
		SearchLocation: "Austin,Texas",
		TopURLCount:    3,
		URLField:       "link",
		ChunkSize:      4000,
		ChunkOverlap:   200,
		MaxConcurrency: 3,
		ExtractMode:    ExtractMarkdown,
		UserAgent:      defaultUserAgent,
	}
}

// Load builds a configuration from defaults overridden by environment
// variables. Missing variables keep their defaults.
func Load() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file over the defaults, then applies environment
// overrides on top.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.fillZero()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.SerpAPIKey = getEnv("SERPAPI_API_KEY", c.SerpAPIKey)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.Model = getEnv("SUMMARY_MODEL", c.Model)
	c.SearchLocation = getEnv("SEARCH_LOCATION", c.SearchLocation)
	c.URLField = getEnv("URL_FIELD", c.URLField)
	c.ExtractMode = getEnv("EXTRACT_MODE", c.ExtractMode)
	c.UserAgent = getEnv("USER_AGENT", c.UserAgent)
	c.TopURLCount = getEnvInt("TOP_URL_COUNT", c.TopURLCount)
	c.ChunkSize = getEnvInt("CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", c.ChunkOverlap)
	c.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", c.MaxConcurrency)

	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			c.FetchTimeout = d
		}
	}
}

// fillZero restores defaults for fields a config file set to zero values.
func (c *Config) fillZero() {
	def := Default()
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.SearchLocation == "" {
		c.SearchLocation = def.SearchLocation
	}
	if c.TopURLCount <= 0 {
		c.TopURLCount = def.TopURLCount
	}
	if c.URLField == "" {
		c.URLField = def.URLField
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = def.ChunkOverlap
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = def.MaxConcurrency
	}
	if c.ExtractMode == "" {
		c.ExtractMode = def.ExtractMode
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
