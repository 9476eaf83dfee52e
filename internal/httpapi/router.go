package httpapi

import "net/http"

// NewMux wires all routes. main() attaches middleware around it.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Research runs
	gh := GenerateHandler{Deps: d}
	mux.HandleFunc("/api/generate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: gh.Generate,
	}))
	mux.HandleFunc("/api/generate/stream", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  gh.GenerateStream,
		http.MethodPost: gh.GenerateStream,
	}))
	mux.HandleFunc("/api/generate/cancel", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: gh.Cancel,
	}))

	// Leads
	lh := LeadsHandler{DB: d.DB}
	mux.HandleFunc("/api/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))

	// Products
	ph := ProductsHandler{DB: d.DB}
	mux.HandleFunc("/api/products", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ph.List,
		http.MethodPost: ph.Create,
	}))
	mux.HandleFunc("/api/products/", ph.ByPath)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/api/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/llm", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    sh.SetLLMKey,
		http.MethodPost:   sh.SetLLMKey,
		http.MethodDelete: sh.DeleteLLMKey,
	}))

	// SSE events (all runs)
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Deps: d}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
