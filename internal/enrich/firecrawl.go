package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/netutil"
)

// Firecrawl enriches through a self-hosted Firecrawl v2 scrape
// endpoint, which hands back markdown plus page metadata.
type Firecrawl struct {
	BaseURL string
	Limiter *netutil.HostLimiter
	hc      *http.Client
}

func NewFirecrawl(baseURL string, timeout time.Duration, lim *netutil.HostLimiter) *Firecrawl {
	return &Firecrawl{
		BaseURL: baseURL,
		Limiter: lim,
		hc:      &http.Client{Timeout: timeout},
	}
}

func (f *Firecrawl) Name() string { return "firecrawl" }

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"metadata"`
	} `json:"data"`
}

func (f *Firecrawl) Enrich(ctx context.Context, companyDomain string) (domain.Company, error) {
	homepage := "https://" + companyDomain

	if f.Limiter != nil {
		if err := f.Limiter.WaitURL(ctx, f.BaseURL); err != nil {
			return domain.Company{}, err
		}
	}

	payload, _ := json.Marshal(map[string]string{"url": homepage})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+"/v2/scrape", bytes.NewReader(payload))
	if err != nil {
		return domain.Company{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.hc.Do(req)
	if err != nil {
		return domain.Company{}, fmt.Errorf("firecrawl post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.Company{}, fmt.Errorf("firecrawl status %d for %s", res.StatusCode, companyDomain)
	}

	var body firecrawlResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return domain.Company{}, fmt.Errorf("firecrawl decode: %w", err)
	}
	if !body.Success {
		return domain.Company{}, fmt.Errorf("firecrawl scrape failed for %s", companyDomain)
	}

	md := body.Data.Markdown
	co := domain.Company{
		Domain:      companyDomain,
		URL:         homepage,
		Name:        companyNameFrom(md, body.Data.Metadata.Title, companyDomain),
		Description: descriptionFrom(md, body.Data.Metadata.Description),
		Phone:       phoneFrom(md),
		LinkedInURL: linkedinFrom(md),
	}
	fillEmails(&co, ExtractEmails(md))
	return co, nil
}

// fillEmails records scraped addresses, falling back to generated
// patterns when the page exposed none.
func fillEmails(co *domain.Company, scraped []string) {
	if len(scraped) > 0 {
		co.Emails = scraped
		co.EmailSource = "scraped"
		return
	}
	co.Emails = GenerateEmailPatterns(co.Domain)
	co.EmailSource = "generated"
}
