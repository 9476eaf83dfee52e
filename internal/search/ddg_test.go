package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const ddgHTML = `<html><body>
<div class="result">
  <a class="result__a" href="/l/?uddg=https%3A%2F%2Facme.io%2F">Acme - Cloud Monitoring</a>
  <div class="result__snippet">Monitoring for DevOps teams.</div>
</div>
<div class="result">
  <a class="result__a" href="https://widgetco.com/">Widget Co</a>
  <div class="result__snippet">Industrial widgets.</div>
</div>
<div class="result">
  <a class="result__a" href="">broken</a>
</div>
<div class="result">
  <a class="result__a" href="https://initech.com/">Initech</a>
</div>
</body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "cloud monitoring" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(ddgHTML))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(5*time.Second, nil)
	d.baseURL = srv.URL + "/"

	got, err := d.Search(context.Background(), "cloud monitoring", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want cap at 2: %v", len(got), got)
	}
	if got[0].URL != "https://acme.io/" {
		t.Errorf("redirect not decoded: %q", got[0].URL)
	}
	if got[0].Title != "Acme - Cloud Monitoring" || got[0].Snippet != "Monitoring for DevOps teams." {
		t.Errorf("first result: %+v", got[0])
	}
	if got[1].URL != "https://widgetco.com/" {
		t.Errorf("plain href: %q", got[1].URL)
	}
}

func TestDuckDuckGoSkipsEmptyHrefs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgHTML))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(5*time.Second, nil)
	d.baseURL = srv.URL + "/"

	got, err := d.Search(context.Background(), "x", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3 (empty href skipped): %v", len(got), got)
	}
}

func TestDecodeDDGRedirect(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/l/?uddg=https%3A%2F%2Facme.io%2Fabout", "https://acme.io/about"},
		{"https://plain.example.com/", "https://plain.example.com/"},
		{"%%%not-a-url", "%%%not-a-url"},
	}
	for _, tc := range cases {
		if got := decodeDDGRedirect(tc.in); got != tc.want {
			t.Errorf("decodeDDGRedirect(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
