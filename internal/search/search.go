package search

import (
	"context"

	"leadgen-engine/internal/domain"
)

// Provider abstracts a web search backend. Implementations cap results
// at max and must be timeout-bounded.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, max int) ([]domain.SearchCandidate, error)
}
