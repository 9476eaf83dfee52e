package enrich

import (
	"regexp"
	"strings"
)

const maxEmails = 5

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Addresses that are scraper noise, not contacts.
var emailNoise = []string{
	"example.com", "test.", "sample.",
	"noreply", "no-reply", "donotreply", "mailer-daemon",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp",
}

// ExtractEmails pulls up to maxEmails unique addresses out of page
// text, preserving first-seen order.
func ExtractEmails(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, m := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if isNoiseEmail(lower) {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, m)
		if len(out) >= maxEmails {
			break
		}
	}
	return out
}

func isNoiseEmail(lower string) bool {
	for _, n := range emailNoise {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// Local parts worth guessing when a homepage exposes no address at all.
var patternLocalParts = []string{
	"sales", "info", "contact", "hello", "support", "business", "inquiry", "team",
}

// GenerateEmailPatterns fabricates common business addresses for a
// domain. A data-shaping fallback, not error recovery: the validator
// still decides whether any of them are plausible.
func GenerateEmailPatterns(companyDomain string) []string {
	out := make([]string, 0, maxEmails)
	for _, p := range patternLocalParts {
		if len(out) >= maxEmails {
			break
		}
		out = append(out, p+"@"+companyDomain)
	}
	return out
}
