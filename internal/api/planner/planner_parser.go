package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wanderhost/concierge-agent/internal/types"
)

// parseItineraryBlocks parses model output strictly as a JSON array of
// day blocks. First attempt is the whole payload; if that fails, the first
// bracket-delimited array substring is extracted and retried. Markdown code
// fences are tolerated because models keep emitting them despite instructions.
func parseItineraryBlocks(payload string) ([]types.ItineraryBlock, error) {
	cleaned := strings.TrimSpace(payload)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var blocks []types.ItineraryBlock
	if err := json.Unmarshal([]byte(cleaned), &blocks); err == nil {
		return blocks, nil
	}

	open := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if open == -1 || end <= open {
		return nil, fmt.Errorf("no JSON array found in generator output")
	}
	if err := json.Unmarshal([]byte(cleaned[open:end+1]), &blocks); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	return blocks, nil
}
