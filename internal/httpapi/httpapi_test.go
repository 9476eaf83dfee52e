package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/llm"
	"leadgen-engine/internal/research"
	"leadgen-engine/internal/store"
)

// Stub pipeline components so handler tests never touch the network.

type stubLLM struct{}

func (stubLLM) ExtractICP(ctx context.Context, desc string) (domain.ICP, error) {
	return domain.ICP{Industries: []string{"SaaS"}, CompanySize: "SMB"}, nil
}

func (stubLLM) GenerateQueries(ctx context.Context, icp domain.ICP, p llm.Progress) ([]string, error) {
	return []string{"cloud monitoring companies"}, nil
}

func (stubLLM) ScoreCompany(ctx context.Context, co domain.Company, icp domain.ICP) (domain.Qualification, error) {
	return domain.Qualification{Score: 82, Fit: "high", Reasoning: "match"}, nil
}

type stubSearch struct{}

func (stubSearch) Name() string { return "stub" }

func (stubSearch) Search(ctx context.Context, q string, max int) ([]domain.SearchCandidate, error) {
	return []domain.SearchCandidate{{URL: "https://acme.io", Title: "Acme"}}, nil
}

type stubEnrich struct{}

func (stubEnrich) Name() string { return "stub" }

func (stubEnrich) Enrich(ctx context.Context, d string) (domain.Company, error) {
	return domain.Company{
		Domain:      d,
		Name:        "Acme",
		Description: "Cloud monitoring",
		URL:         "https://" + d,
		Emails:      []string{"sales@" + d},
		EmailSource: "generated",
	}, nil
}

type stubChecker struct{}

func (stubChecker) Validate(ctx context.Context, emails []string, scraped bool) []domain.EmailDetail {
	out := make([]domain.EmailDetail, 0, len(emails))
	for _, e := range emails {
		out = append(out, domain.EmailDetail{Email: e, Confidence: 70, Status: "likely", HasMX: true})
	}
	return out
}

func testDeps(t *testing.T) Deps {
	t.Helper()

	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	var base config.Config
	base.LLM.BaseURL = "http://localhost:11434/v1"
	cfg, vr := config.NormalizeAndValidate(base)
	require.True(t, vr.OK())

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, config.SaveAtomic(cfgPath, cfg))

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	hub := events.NewHub()
	return Deps{
		DB:          db,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg: func() (config.Config, error) {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return loaded, err
			}
			normalized, _ := config.NormalizeAndValidate(loaded)
			return normalized, nil
		},
		Manager: research.NewManager(),
		NewRunner: func(cfg config.Config) *research.Runner {
			return &research.Runner{
				LLM:     stubLLM{},
				Search:  stubSearch{},
				Enrich:  stubEnrich{},
				Checker: stubChecker{},
				Store:   research.DBStore{DB: db},
				Hub:     hub,
			}
		},
	}
}

func testServer(t *testing.T) (*httptest.Server, Deps) {
	t.Helper()
	d := testDeps(t)
	h := Chain(NewMux(d), Cors, RequestID, Recover, AccessLog)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, d
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeMap(t, res)
	require.Equal(t, true, body["ok"])
	require.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Post(srv.URL+"/health", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
