package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/netutil"
)

// SearxNG queries a self-hosted SearxNG instance over its JSON API.
type SearxNG struct {
	BaseURL string
	Limiter *netutil.HostLimiter
	hc      *http.Client
}

func NewSearxNG(baseURL string, timeout time.Duration, lim *netutil.HostLimiter) *SearxNG {
	return &SearxNG{
		BaseURL: baseURL,
		Limiter: lim,
		hc:      &http.Client{Timeout: timeout},
	}
}

func (s *SearxNG) Name() string { return "searxng" }

type searxResponse struct {
	Results []struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"results"`
}

func (s *SearxNG) Search(ctx context.Context, query string, max int) ([]domain.SearchCandidate, error) {
	if max <= 0 {
		max = 10
	}

	params := url.Values{
		"q":          {query},
		"format":     {"json"},
		"pageno":     {"1"},
		"safesearch": {"0"},
		"language":   {"en"},
	}
	reqURL := s.BaseURL + "/search?" + params.Encode()

	if s.Limiter != nil {
		if err := s.Limiter.WaitURL(ctx, reqURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("searxng status %d", res.StatusCode)
	}

	var body searxResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("searxng decode: %w", err)
	}

	out := make([]domain.SearchCandidate, 0, max)
	for _, item := range body.Results {
		if len(out) >= max {
			break
		}
		out = append(out, domain.SearchCandidate{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Content,
		})
	}
	return out, nil
}
