package main

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/emailcheck"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/httpapi"
	"leadgen-engine/internal/llm"
	"leadgen-engine/internal/netutil"
	"leadgen-engine/internal/research"
	"leadgen-engine/internal/search"
	"leadgen-engine/internal/secrets"
	"leadgen-engine/internal/store"
)

func main() {
	// Engine data dir: env if provided (a desktop shell can pass one),
	// else local folder.
	dataDir := os.Getenv("LEADGEN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over the
	// sqlite file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.OverlayEnv(&cfg)
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warn=%q", w)
		}
		for _, e := range vr.Errors {
			log.Printf("level=error msg=\"config\" err=%q", e)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "leadgen.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	hub := events.NewHub()
	manager := research.NewManager()

	deps := httpapi.Deps{
		DB:          db,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Manager:     manager,
		NewRunner: func(cfg config.Config) *research.Runner {
			return buildRunner(cfg, db, hub)
		},
	}

	mux := httpapi.NewMux(deps)
	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

// buildRunner assembles one run's pipeline from the config snapshot.
// SearxNG and Firecrawl are used when configured, with DuckDuckGo HTML
// search and direct homepage fetches as fallbacks.
func buildRunner(cfg config.Config, db *sql.DB, hub *events.Hub) *research.Runner {
	lim := netutil.NewHostLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)

	var provider search.Provider
	if cfg.Search.SearxNGBaseURL != "" {
		provider = search.NewSearxNG(cfg.Search.SearxNGBaseURL, time.Duration(cfg.Search.TimeoutSeconds)*time.Second, lim)
	} else {
		provider = search.NewDuckDuckGo(time.Duration(cfg.Search.TimeoutSeconds)*time.Second, lim)
	}

	var enricher enrich.Enricher
	if cfg.Enrich.FirecrawlBaseURL != "" {
		enricher = enrich.NewFirecrawl(cfg.Enrich.FirecrawlBaseURL, time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second, lim)
	} else {
		enricher = enrich.NewHomepage(time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second, lim)
	}

	client := llm.NewClient(
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		secrets.GetLLMAPIKey(),
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
	)

	checker := emailcheck.NewChecker(
		cfg.Email.VerifySMTP,
		time.Duration(cfg.Email.SMTPTimeoutSeconds)*time.Second,
		cfg.Email.ProbeFrom,
	)

	return &research.Runner{
		LLM:             client,
		Search:          provider,
		Enrich:          enricher,
		Checker:         checker,
		Store:           research.DBStore{DB: db},
		Hub:             hub,
		ResultsPerQuery: cfg.Search.ResultsPerQuery,
	}
}
