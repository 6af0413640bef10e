package engine

import "howwillidie/internal/models"

// Locations returns the distinct location names across records in first-seen
// order.
func Locations(records []models.MortalityRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range records {
		name := records[i].LocationName
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
