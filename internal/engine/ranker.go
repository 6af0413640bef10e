package engine

import (
	"math"
	"sort"

	"howwillidie/internal/models"
)

// DefaultLimit is the number of causes a prediction returns.
const DefaultLimit = 10

// TopCauses ranks matched records by Val, highest first, and returns the cause
// names of the first limit records. Equal values keep their input order and NaN
// sorts last. Cause names are not deduplicated.
func TopCauses(matched []models.MortalityRecord, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	sorted := make([]*models.MortalityRecord, len(matched))
	for i := range matched {
		sorted[i] = &matched[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool { return ranksBefore(sorted[i].Val, sorted[j].Val) })

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	causes := make([]string, len(sorted))
	for i, r := range sorted {
		causes[i] = r.CauseName
	}
	return causes
}

func ranksBefore(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
