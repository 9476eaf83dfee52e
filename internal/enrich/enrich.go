// Package enrich builds a Company record from a bare domain, either
// through a Firecrawl scrape service or by fetching the homepage
// directly.
package enrich

import (
	"context"

	"leadgen-engine/internal/domain"
)

type Enricher interface {
	Name() string
	Enrich(ctx context.Context, companyDomain string) (domain.Company, error)
}
