// Package normalize turns raw search results into a deduplicated set of
// plausible company domains. It only dedupes within one batch; domains
// already saved as leads are the store's unique index's problem.
package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"leadgen-engine/internal/domain"
)

// Registrable domains that are never a company homepage: search engines,
// social platforms, job boards, directories, link aggregators.
var domainDenylist = []string{
	"google.com",
	"bing.com",
	"duckduckgo.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"linkedin.com",
	"youtube.com",
	"instagram.com",
	"tiktok.com",
	"reddit.com",
	"quora.com",
	"stackoverflow.com",
	"github.com",
	"wikipedia.org",
	"medium.com",
	"substack.com",
	"wordpress.com",
	"blogspot.com",

	// job boards / ATS
	"indeed.com",
	"glassdoor.com",
	"monster.com",
	"ziprecruiter.com",
	"greenhouse.io",
	"lever.co",
	"workday.com",
	"myworkdayjobs.com",
	"smartrecruiters.com",

	// directories & review aggregators
	"crunchbase.com",
	"yelp.com",
	"trustpilot.com",
	"capterra.com",
	"g2.com",
	"softwareadvice.com",
	"yellowpages.com",

	// press
	"reuters.com",
	"bloomberg.com",
	"techcrunch.com",
	"forbes.com",
	"venturebeat.com",
	"theverge.com",
	"wired.com",
}

// URL substrings that mark a result as a non-company page even when the
// domain itself would pass.
var badURLPatterns = []string{
	"/blog/", "blog.",
	"/news/", "/press/",
	"/careers", "/jobs", "/job/",
	".pdf", ".doc", ".ppt",
}

// Candidates extracts unique registrable domains from one query's
// results. Order follows first appearance; output is lowercased.
func Candidates(results []domain.SearchCandidate) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, r := range results {
		d := RegistrableDomain(r.URL)
		if d == "" || len(d) <= 3 {
			continue
		}
		if isDenied(d) || hasBadPattern(r.URL) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// RegistrableDomain reduces a URL to its eTLD+1 ("sub.acme.co.uk" ->
// "acme.co.uk"), lowercased. Empty string when the URL has no usable
// host.
func RegistrableDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}

	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return d
}

func isDenied(d string) bool {
	for _, b := range domainDenylist {
		if d == b || strings.HasSuffix(d, "."+b) {
			return true
		}
	}
	// .gov / .edu are never sales prospects here
	if strings.HasSuffix(d, ".gov") || strings.HasSuffix(d, ".edu") {
		return true
	}
	return false
}

func hasBadPattern(raw string) bool {
	lu := strings.ToLower(raw)
	for _, p := range badURLPatterns {
		if strings.Contains(lu, p) {
			return true
		}
	}
	return false
}
