// config/overlay.go
package config

import (
	"os"
	"strconv"
)

// OverlayEnv applies environment overrides on top of the loaded file.
// Service endpoints usually come from docker-compose style env, so they
// win over whatever the yaml says.
func OverlayEnv(cfg *Config) {
	if v := os.Getenv("SEARXNG_BASE_URL"); v != "" {
		cfg.Search.SearxNGBaseURL = v
	}
	if v := os.Getenv("FIRECRAWL_BASE_URL"); v != "" {
		cfg.Enrich.FirecrawlBaseURL = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" && cfg.LLM.Model == "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LEADGEN_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
}
