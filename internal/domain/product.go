package domain

import "time"

// ProductMetadata carries optional targeting hints for a product.
type ProductMetadata struct {
	TargetPersonas []string `json:"target_personas,omitempty"`
	Industries     []string `json:"industries,omitempty"`
	Regions        []string `json:"regions,omitempty"`
	CompanySize    string   `json:"company_size,omitempty"`
	BudgetRange    string   `json:"budget_range,omitempty"`
}

// Product is a seller's product/service that leads are generated for.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Metadata    ProductMetadata `json:"metadata"`
	LeadCount   int             `json:"lead_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
