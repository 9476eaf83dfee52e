package enrich

import (
	"regexp"
	"strings"
)

const maxDescriptionLen = 200

var titleSeparators = []string{" | ", " - ", " – "}

// companyNameFrom picks the best available company name: page title
// stripped of taglines, else the first markdown heading, else the
// Title-cased domain label.
func companyNameFrom(markdown, title, companyDomain string) string {
	if t := strings.TrimSpace(title); t != "" {
		for _, sep := range titleSeparators {
			if i := strings.Index(t, sep); i > 0 {
				return strings.TrimSpace(t[:i])
			}
		}
		return t
	}

	for _, line := range firstLines(markdown, 10) {
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}

	return nameFromDomain(companyDomain)
}

func nameFromDomain(companyDomain string) string {
	label, _, _ := strings.Cut(companyDomain, ".")
	if label == "" {
		return companyDomain
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// descriptionFrom prefers page metadata, else the first meaningful
// paragraph, truncated to keep LLM scoring prompts small.
func descriptionFrom(markdown, metaDescription string) string {
	if d := strings.TrimSpace(metaDescription); d != "" {
		return truncate(d, maxDescriptionLen)
	}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "!") || strings.HasPrefix(line, "[") {
			continue
		}
		if len(line) > 20 {
			return truncate(line, maxDescriptionLen)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func firstLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-\s]?\d{3,4}[-\s]?\d{3,4}[-\s]?\d{3,4}`),
	regexp.MustCompile(`\(?\d{3}\)?[-\s]?\d{3}[-\s]?\d{4}`),
}

func phoneFrom(text string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

var linkedinRe = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/company/[A-Za-z0-9_-]+`)

func linkedinFrom(text string) string {
	return linkedinRe.FindString(text)
}
