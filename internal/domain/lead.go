package domain

import "time"

// SearchCandidate is one raw result from a search provider. Ephemeral:
// produced by search, consumed by the normalizer, never stored.
type SearchCandidate struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// EmailDetail is one candidate address with its validation verdict.
type EmailDetail struct {
	Email      string `json:"email"`
	Confidence int    `json:"confidence"` // 0-100
	Status     string `json:"status"`     // verified | likely | invalid
	Persona    string `json:"persona,omitempty"`
	HasMX      bool   `json:"has_mx"`
	SMTPValid  *bool  `json:"smtp_valid"` // nil = not checked / inconclusive
	Scraped    bool   `json:"scraped"`    // false = pattern-generated
}

// Company is an enriched candidate built from a homepage scrape.
type Company struct {
	Domain       string        `json:"domain"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	URL          string        `json:"url"`
	Phone        string        `json:"phone,omitempty"`
	LinkedInURL  string        `json:"linkedin_url,omitempty"`
	Emails       []string      `json:"emails"`
	EmailDetails []EmailDetail `json:"email_details"`
	EmailSource  string        `json:"email_source"` // scraped | generated
}

// BestEmailConfidence returns the highest confidence among validated
// addresses, 0 when none survived validation.
func (c Company) BestEmailConfidence() int {
	best := 0
	for _, d := range c.EmailDetails {
		if d.Confidence > best {
			best = d.Confidence
		}
	}
	return best
}

// Qualification is the scoring verdict attached to a company.
type Qualification struct {
	Score       int       `json:"score"` // 0-100
	Fit         string    `json:"fit"`   // high | medium | low
	Reasoning   string    `json:"reasoning"`
	QualifiedAt time.Time `json:"qualified_at"`
}

// Lead is a qualified company as persisted: company data plus
// qualification plus product association.
type Lead struct {
	ID            int64         `json:"id"`
	Domain        string        `json:"domain"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	URL           string        `json:"url"`
	Phone         string        `json:"phone,omitempty"`
	LinkedInURL   string        `json:"linkedin_url,omitempty"`
	Emails        []string      `json:"emails"`
	EmailDetails  []EmailDetail `json:"email_details"`
	EmailSource   string        `json:"email_source"`
	Qualification Qualification `json:"qualification"`
	ProductID     string        `json:"product_id,omitempty"`
	ProductName   string        `json:"product_name,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
