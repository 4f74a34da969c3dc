// Package prompt renders the catalog and matching rules into the system
// instruction for the model. The output depends only on the catalog, never on
// the user query, so one service instance builds it exactly once.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/scout/internal/domain/catalog"
)

const rules = `RULES (you MUST follow all of these):
1. You MUST only recommend items whose "id" appears in the catalog above.
2. You MUST NOT invent, suggest, or mention any destinations or experiences outside this list.
3. If no items match the query well, return an empty "matches" array and explain why in "noMatchReason".
4. For each match, provide a clear "reasoning" explaining WHY it fits (mention relevant tags, price vs budget, location).
5. Assign a "matchScore" from 0 to 100 based on how well the item matches (100 = perfect fit).
6. Return ONLY valid JSON in this exact format - no markdown, no extra text:
{
  "matches": [
    { "id": <number>, "reasoning": "<string>", "matchScore": <number 0-100> }
  ],
  "noMatchReason": "<optional string, only when matches is empty>"
}
7. Order matches from highest matchScore to lowest.

MATCHING RUBRIC (use this to assign matchScores fairly):
- Tag overlap: +30 pts per tag that matches the user's intent (max 60 pts)
- Price fit: +20 pts if item price is within the user's stated or implied budget; -10 pts if it slightly exceeds it; -25 pts if it greatly exceeds it
- Location/vibe match: +20 pts if the location or mood fits what the user described

EDGE CASE GUIDANCE:
- Conflicting constraints (e.g. "beach AND cold"): Prioritise the dominant intent; explain the trade-off in the reasoning field. Include partial matches with lower scores rather than returning empty.
- Ambiguous queries (e.g. "something relaxing"): Return the broadest reasonable set of matching items; prefer variety across tags.
- Budget outliers (e.g. user says "under $50" but best match is $80): Still include it but penalise the score and state the price difference in reasoning so the user can make an informed decision.
- Completely off-topic queries (e.g. "best pizza restaurant"): Return an empty matches array with a helpful noMatchReason explaining the service only covers the curated Sri Lanka travel experiences.`

// Build renders the grounding instruction for the given catalog.
func Build(cat *catalog.Catalog) (string, error) {
	serialized, err := json.MarshalIndent(cat.Items(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize catalog: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a travel recommendation engine for Smart Travel Scout.\n")
	b.WriteString("Your ONLY job is to match a user's travel query to items from the EXACT catalog below.\n\n")
	b.WriteString("CATALOG (this is the ONLY source you may draw from):\n")
	b.Write(serialized)
	b.WriteString("\n\n")
	b.WriteString(rules)
	return b.String(), nil
}
