package httpapi

import (
	"net/http"

	"leadgen-engine/internal/config"
)

type HealthHandler struct {
	Deps Deps
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := h.Deps.DB.PingContext(r.Context()); err != nil {
		dbOK = false
	}

	cfg := h.Deps.CfgVal.Load().(config.Config)

	writeJSON(w, map[string]any{
		"ok": dbOK,
		"db": dbOK,
		"services": map[string]any{
			"llm":       cfg.LLM.BaseURL != "",
			"searxng":   cfg.Search.SearxNGBaseURL != "",
			"firecrawl": cfg.Enrich.FirecrawlBaseURL != "",
		},
		"active_runs": len(h.Deps.Manager.Active()),
	})
}
