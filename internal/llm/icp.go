package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"leadgen-engine/internal/domain"
)

const icpPromptFmt = `Extract the Ideal Customer Profile (ICP) from this product description.

Product: %s

Identify:
- Target industries (list of strings, e.g., ["Software", "E-commerce"])
- Geographic regions (list of strings, e.g., ["North America", "Europe"])
- Company size (one of: "startup", "SMB", "mid-market", "enterprise")
- Buyer personas/roles (list of strings, e.g., ["CTO", "VP Engineering"])
- Pain points this solves (list of strings)
- Solution summary (2-3 sentences describing what this product does)

Return ONLY valid JSON in this exact format:
{
  "industries": ["Software", "E-commerce"],
  "regions": ["North America", "Europe"],
  "company_size": "SMB",
  "buyer_roles": ["CTO", "VP Engineering"],
  "pain_points": ["High customer churn", "Poor user onboarding"],
  "solution_summary": "Brief description of what the product does and how it helps."
}

Do NOT include any markdown formatting or code blocks. Return ONLY the JSON object.`

// ExtractICP derives the ideal-customer profile from a product
// description. Transport errors propagate; a malformed reply degrades
// to a minimal generic profile so the run can still search.
func (c *Client) ExtractICP(ctx context.Context, productDescription string) (domain.ICP, error) {
	reply, err := c.Chat(ctx, fmt.Sprintf(icpPromptFmt, productDescription))
	if err != nil {
		return domain.ICP{}, fmt.Errorf("extract icp: %w", err)
	}

	var icp domain.ICP
	if err := json.Unmarshal([]byte(stripFences(reply)), &icp); err != nil {
		log.Printf("level=warn msg=\"icp reply not json, using fallback profile\" err=%v", err)
		return fallbackICP(productDescription), nil
	}
	if len(icp.Industries) == 0 {
		icp.Industries = []string{"Technology"}
	}
	return icp, nil
}

func fallbackICP(productDescription string) domain.ICP {
	summary := productDescription
	if len(summary) > 200 {
		summary = summary[:200]
	}
	return domain.ICP{
		Industries:      []string{"Technology"},
		Regions:         []string{"Global"},
		CompanySize:     "SMB",
		BuyerRoles:      []string{"Business Owner"},
		PainPoints:      []string{"Operational efficiency"},
		SolutionSummary: summary,
	}
}
