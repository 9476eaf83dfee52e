package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults, clamps tunables and reports
// anything that would make a run fail outright.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port == 0 {
		out.App.Port = 8080
	}
	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.TimeoutSeconds <= 0 {
		out.Search.TimeoutSeconds = 15
	}
	if out.Search.ResultsPerQuery <= 0 {
		out.Search.ResultsPerQuery = 10
	}
	if out.Enrich.TimeoutSeconds <= 0 {
		out.Enrich.TimeoutSeconds = 45
	}
	if out.LLM.TimeoutSeconds <= 0 {
		out.LLM.TimeoutSeconds = 60
	}
	if out.LLM.Temperature == 0 {
		out.LLM.Temperature = 0.3
	}
	if out.LLM.MaxTokens <= 0 {
		out.LLM.MaxTokens = 2000
	}
	if out.Email.SMTPTimeoutSeconds <= 0 {
		out.Email.SMTPTimeoutSeconds = 5
	}
	if out.Email.ProbeFrom == "" {
		out.Email.ProbeFrom = "verify@leadgen.local"
	}

	if out.Research.TargetCount <= 0 {
		out.Research.TargetCount = 30
	}
	if out.Research.TargetCount > 100 {
		res.addWarn("research.target_count capped at 100")
		out.Research.TargetCount = 100
	}
	if out.Research.MaxIterations <= 0 {
		out.Research.MaxIterations = 5
	}
	if out.Research.MaxIterations > 10 {
		res.addWarn("research.max_iterations capped at 10")
		out.Research.MaxIterations = 10
	}

	if out.Limits.RequestsPerSecond <= 0 {
		out.Limits.RequestsPerSecond = 1.0
	}
	if out.Limits.Burst <= 0 {
		out.Limits.Burst = 2
	}

	trim := func(s string) string { return strings.TrimSpace(s) }
	out.Search.SearxNGBaseURL = strings.TrimRight(trim(out.Search.SearxNGBaseURL), "/")
	out.Enrich.FirecrawlBaseURL = strings.TrimRight(trim(out.Enrich.FirecrawlBaseURL), "/")
	out.LLM.BaseURL = strings.TrimRight(trim(out.LLM.BaseURL), "/")

	if out.LLM.BaseURL == "" {
		res.addErr("llm.base_url is required: profile extraction and scoring need a chat endpoint")
	}
	if out.LLM.Model == "" {
		res.addWarn("llm.model is empty, server-side default model will be used")
	}
	if out.Search.SearxNGBaseURL == "" {
		res.addWarn("search.searxng_base_url is empty, falling back to DuckDuckGo HTML search")
	}
	if out.Enrich.FirecrawlBaseURL == "" {
		res.addWarn("enrich.firecrawl_base_url is empty, falling back to direct homepage fetches")
	}

	return out, res
}
