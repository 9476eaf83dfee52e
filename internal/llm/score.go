package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"leadgen-engine/internal/domain"
)

const scorePromptFmt = `Score this company against the Ideal Customer Profile on a scale of 0-100.

**ICP (Ideal Customer Profile):**
- Target Industries: %s
- Company Size Preference: %s
- Pain Points to Address: %s
- Solution: %s

**Company to Evaluate:**
- Name: %s
- Description: %s
- Domain: %s
- Homepage: %s

**Scoring Criteria:**
1. Industry Match (0-30 points): Does the company operate in target industries?
2. Company Size Fit (0-20 points): Does size match preference?
3. Pain Point Relevance (0-30 points): Do they likely experience the pain points?
4. Buying Signals (0-20 points): Evidence they might be interested (tech stack, growth, etc.)

**Instructions:**
- Assign a total relevance_score from 0-100
- Determine fit_label: "high" (65-100), "medium" (40-64), "low" (0-39)
- Provide short_reason (max 150 characters) explaining the score

Return ONLY valid JSON:
{
  "relevance_score": 75,
  "fit_label": "high",
  "short_reason": "Strong industry match and relevant pain points"
}

Do NOT include any markdown formatting. Return ONLY the JSON object.`

type scoreReply struct {
	RelevanceScore int    `json:"relevance_score"`
	FitLabel       string `json:"fit_label"`
	ShortReason    string `json:"short_reason"`
}

// ScoreCompany rates one enriched company against the profile. Any
// failure here is a recoverable per-candidate error for the caller.
func (c *Client) ScoreCompany(ctx context.Context, co domain.Company, icp domain.ICP) (domain.Qualification, error) {
	desc := co.Description
	if desc == "" {
		desc = "No description available"
	}

	prompt := fmt.Sprintf(scorePromptFmt,
		strings.Join(icp.Industries, ", "),
		icp.CompanySize,
		strings.Join(icp.PainPoints, ", "),
		icp.SolutionSummary,
		co.Name, desc, co.Domain, co.URL,
	)

	reply, err := c.Chat(ctx, prompt)
	if err != nil {
		return domain.Qualification{}, fmt.Errorf("score company: %w", err)
	}

	var sr scoreReply
	if err := json.Unmarshal([]byte(stripFences(reply)), &sr); err != nil {
		return domain.Qualification{}, fmt.Errorf("score company %s: bad reply: %w", co.Domain, err)
	}

	if sr.RelevanceScore < 0 {
		sr.RelevanceScore = 0
	}
	if sr.RelevanceScore > 100 {
		sr.RelevanceScore = 100
	}

	return domain.Qualification{
		Score:     sr.RelevanceScore,
		Fit:       normalizeFit(sr.FitLabel, sr.RelevanceScore),
		Reasoning: sr.ShortReason,
	}, nil
}

// normalizeFit recomputes the label from the score when the model
// invents one outside the fixed vocabulary.
func normalizeFit(label string, score int) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high", "medium", "low":
		return strings.ToLower(strings.TrimSpace(label))
	}
	switch {
	case score >= 65:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}
