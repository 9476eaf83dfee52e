package domain

// ICP is the ideal-customer profile derived once per run from the
// product description. Immutable for the duration of a run.
type ICP struct {
	Industries      []string `json:"industries"`
	Regions         []string `json:"regions"`
	CompanySize     string   `json:"company_size"` // startup | SMB | mid-market | enterprise
	BuyerRoles      []string `json:"buyer_roles"`
	PainPoints      []string `json:"pain_points"`
	SolutionSummary string   `json:"solution_summary"`
}
