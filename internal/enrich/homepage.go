package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/netutil"
)

// Homepage fetches https://<domain> directly and mines the HTML with
// goquery. The fallback when no Firecrawl instance is configured.
type Homepage struct {
	Limiter *netutil.HostLimiter
	hc      *http.Client

	// scheme is swappable so tests can point at an httptest server.
	scheme string
	host   string
}

func NewHomepage(timeout time.Duration, lim *netutil.HostLimiter) *Homepage {
	return &Homepage{
		Limiter: lim,
		hc: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		scheme: "https",
	}
}

func (h *Homepage) Name() string { return "homepage" }

func (h *Homepage) Enrich(ctx context.Context, companyDomain string) (domain.Company, error) {
	host := companyDomain
	if h.host != "" {
		host = h.host
	}
	homepage := h.scheme + "://" + host

	if h.Limiter != nil {
		if err := h.Limiter.WaitURL(ctx, homepage); err != nil {
			return domain.Company{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, homepage, nil)
	if err != nil {
		return domain.Company{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := h.hc.Do(req)
	if err != nil {
		return domain.Company{}, fmt.Errorf("homepage get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.Company{}, fmt.Errorf("homepage status %d for %s", res.StatusCode, companyDomain)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return domain.Company{}, fmt.Errorf("homepage parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	metaDesc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	pageText := doc.Find("body").Text()

	co := domain.Company{
		Domain:      companyDomain,
		URL:         "https://" + companyDomain,
		Name:        companyNameFrom("", title, companyDomain),
		Description: descriptionFrom(pageText, metaDesc),
		Phone:       phoneFrom(pageText),
	}

	// LinkedIn link and mailto: targets live in attributes, not text.
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if co.LinkedInURL == "" {
			if m := linkedinFrom(href); m != "" {
				co.LinkedInURL = m
			}
		}
	})

	var mailtos []string
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexAny(addr, "?&"); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			mailtos = append(mailtos, addr)
		}
	})

	scraped := ExtractEmails(strings.Join(mailtos, " ") + " " + pageText)
	fillEmails(&co, scraped)
	return co, nil
}
