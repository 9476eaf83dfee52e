package emailcheck

import "testing"

func TestDetectPersona(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"ceo@acme.io", "C-Level"},
		{"chief.revenue@acme.io", "C-Level"},
		{"vp.sales@acme.io", "VP/Director"},
		{"director@acme.io", "VP/Director"},
		{"it-manager@acme.io", "IT Manager"},
		{"founder@acme.io", "Founder"},
		{"owner@acme.io", "Founder"},
		{"sales@acme.io", ""},
		{"jane@acme.io", ""},
		{"@acme.io", ""},
		// Pattern is a substring of the token, not a token: no match.
		{"recruiting@acme.io", ""},
		{"salesdirector@acme.io", ""},
	}
	for _, tc := range cases {
		if got := DetectPersona(tc.email); got != tc.want {
			t.Errorf("DetectPersona(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}
