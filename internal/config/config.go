// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		// SearxNG JSON endpoint. When empty the engine falls back to
		// the DuckDuckGo HTML provider.
		SearxNGBaseURL  string `yaml:"searxng_base_url" json:"searxng_base_url"`
		TimeoutSeconds  int    `yaml:"timeout_seconds" json:"timeout_seconds"`
		ResultsPerQuery int    `yaml:"results_per_query" json:"results_per_query"`
	} `yaml:"search" json:"search"`

	Enrich struct {
		// Firecrawl scrape endpoint. When empty the engine fetches
		// homepages directly.
		FirecrawlBaseURL string `yaml:"firecrawl_base_url" json:"firecrawl_base_url"`
		TimeoutSeconds   int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"enrich" json:"enrich"`

	LLM struct {
		BaseURL        string  `yaml:"base_url" json:"base_url"`
		Model          string  `yaml:"model" json:"model"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		Temperature    float64 `yaml:"temperature" json:"temperature"`
		MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	} `yaml:"llm" json:"llm"`

	Email struct {
		VerifySMTP         bool   `yaml:"verify_smtp" json:"verify_smtp"`
		SMTPTimeoutSeconds int    `yaml:"smtp_timeout_seconds" json:"smtp_timeout_seconds"`
		ProbeFrom          string `yaml:"probe_from" json:"probe_from"`
	} `yaml:"email" json:"email"`

	Research struct {
		TargetCount   int `yaml:"target_count" json:"target_count"`
		MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	} `yaml:"research" json:"research"`

	Limits struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
	} `yaml:"limits" json:"limits"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
