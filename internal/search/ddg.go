package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/netutil"
)

// DuckDuckGo scrapes the HTML results page. Used when no SearxNG
// instance is configured; noisier than the JSON API but needs no
// self-hosted service.
type DuckDuckGo struct {
	Limiter *netutil.HostLimiter
	hc      *http.Client

	// baseURL is swappable for tests.
	baseURL string
}

func NewDuckDuckGo(timeout time.Duration, lim *netutil.HostLimiter) *DuckDuckGo {
	return &DuckDuckGo{
		Limiter: lim,
		hc:      &http.Client{Timeout: timeout},
		baseURL: "https://duckduckgo.com/html/",
	}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]domain.SearchCandidate, error) {
	if max <= 0 {
		max = 10
	}

	reqURL := d.baseURL + "?q=" + url.QueryEscape(query)

	if d.Limiter != nil {
		if err := d.Limiter.WaitURL(ctx, reqURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := d.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ddg get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("ddg status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("ddg parse html: %w", err)
	}

	var out []domain.SearchCandidate

	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(out) >= max {
			return false
		}
		a := sel.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		target := decodeDDGRedirect(href)
		title := strings.TrimSpace(a.Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		out = append(out, domain.SearchCandidate{
			URL:     target,
			Title:   title,
			Snippet: snippet,
		})
		return true
	})

	return out, nil
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}
