package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"leadgen-engine/internal/domain"
)

const maxQueriesPerIteration = 6

// Progress is the bounded context handed to query generation: counters
// plus a short window of recent notes instead of a growing transcript.
type Progress struct {
	Iteration   int
	SavedCount  int
	TargetCount int
	RecentNotes []string
}

const queriesPromptFmt = `Generate %d diverse web search queries to find companies matching this Ideal Customer Profile:

**ICP:**
- Industries: %s
- Regions: %s
- Company Size: %s
- Buyer Roles: %s
- Pain Points: %s

**Current Progress:** %d/%d quality leads found (iteration %d, need %d more)
%s
**Query Strategy:**
- Target company directories and listings
- Search for industry-specific associations and member lists
- Look for review sites with relevant companies
- Search for companies using location + industry keywords

**Requirements:**
- Queries should be specific enough to find relevant companies
- Vary query structure for better coverage, avoid repeating earlier searches
- Include industry terms and location when relevant
- Avoid overly broad queries

Return ONLY a JSON array of query strings:
["specific query 1", "specific query 2", "specific query 3"]

Do NOT include any markdown formatting. Return ONLY the JSON array.`

// GenerateQueries asks for a small batch of search queries sized to the
// remaining budget. Malformed replies degrade to two deterministic
// queries built from the profile.
func (c *Client) GenerateQueries(ctx context.Context, icp domain.ICP, p Progress) ([]string, error) {
	remaining := p.TargetCount - p.SavedCount
	if remaining < 1 {
		remaining = 1
	}
	n := remaining + 2
	if n > maxQueriesPerIteration {
		n = maxQueriesPerIteration
	}

	notes := ""
	if len(p.RecentNotes) > 0 {
		notes = "**Recent steps:**\n- " + strings.Join(p.RecentNotes, "\n- ") + "\n"
	}

	prompt := fmt.Sprintf(queriesPromptFmt,
		n,
		strings.Join(icp.Industries, ", "),
		strings.Join(icp.Regions, ", "),
		icp.CompanySize,
		strings.Join(icp.BuyerRoles, ", "),
		strings.Join(icp.PainPoints, ", "),
		p.SavedCount, p.TargetCount, p.Iteration, remaining,
		notes,
	)

	reply, err := c.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate queries: %w", err)
	}

	var queries []string
	if err := json.Unmarshal([]byte(stripFences(reply)), &queries); err != nil || len(queries) == 0 {
		log.Printf("level=warn msg=\"query reply not a json array, using fallback queries\"")
		return fallbackQueries(icp), nil
	}
	if len(queries) > maxQueriesPerIteration {
		queries = queries[:maxQueriesPerIteration]
	}
	return queries, nil
}

func fallbackQueries(icp domain.ICP) []string {
	industry := "business"
	if len(icp.Industries) > 0 {
		industry = icp.Industries[0]
	}
	region := ""
	if len(icp.Regions) > 0 {
		region = " " + icp.Regions[0]
	}
	size := icp.CompanySize
	if size == "" {
		size = "SMB"
	}
	return []string{
		strings.TrimSpace(industry + " companies" + region),
		strings.TrimSpace("top " + size + " companies in " + industry),
	}
}
