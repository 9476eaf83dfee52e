package normalize

import (
	"reflect"
	"testing"

	"leadgen-engine/internal/domain"
)

func cand(urls ...string) []domain.SearchCandidate {
	out := make([]domain.SearchCandidate, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.SearchCandidate{URL: u})
	}
	return out
}

func TestCandidates(t *testing.T) {
	got := Candidates(cand(
		"https://www.acme.io/products",
		"https://acme.io/about",        // duplicate registrable domain
		"https://blog.widgetco.com",    // blog subdomain pattern
		"https://widgetco.com/careers", // careers page
		"https://en.wikipedia.org/wiki/Acme",
		"https://www.linkedin.com/company/acme",
		"https://app.initech.co.uk/",
		"https://nasa.gov/news",
		"https://mit.edu",
		"not a url",
		"https://x.io", // too short after eTLD+1? "x.io" is len 4 > 3, keep
	))

	want := []string{"acme.io", "initech.co.uk", "x.io"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesOrderFollowsFirstAppearance(t *testing.T) {
	got := Candidates(cand(
		"https://beta-corp.com/",
		"https://alpha-corp.com/",
		"https://beta-corp.com/pricing",
	))
	want := []string{"beta-corp.com", "alpha-corp.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates() = %v, want %v", got, want)
	}
}

func TestRegistrableDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.acme.io/x", "acme.io"},
		{"https://sub.acme.co.uk/", "acme.co.uk"},
		{"https://ACME.IO", "acme.io"},
		{"https://acme.io.", "acme.io"},
		{"nonsense", ""},
		{"https://localhost/", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := RegistrableDomain(tc.in); got != tc.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeniedDomains(t *testing.T) {
	for _, u := range []string{
		"https://www.google.com/search?q=x",
		"https://jobs.lever.co/acme",
		"https://www.g2.com/products/acme",
		"https://techcrunch.com/2024/01/acme",
		"https://something.gov",
		"https://college.edu",
	} {
		if got := Candidates(cand(u)); len(got) != 0 {
			t.Errorf("Candidates(%q) = %v, want none", u, got)
		}
	}
}

func TestBadURLPatterns(t *testing.T) {
	for _, u := range []string{
		"https://acme.io/blog/post-1",
		"https://acme.io/news/2024",
		"https://acme.io/whitepaper.pdf",
		"https://acme.io/jobs",
	} {
		if got := Candidates(cand(u)); len(got) != 0 {
			t.Errorf("Candidates(%q) = %v, want none", u, got)
		}
	}
}
