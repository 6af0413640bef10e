package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howwillidie/internal/models"
)

func ranked(vals ...float64) []models.MortalityRecord {
	out := make([]models.MortalityRecord, len(vals))
	for i, v := range vals {
		out[i] = models.MortalityRecord{CauseName: fmt.Sprintf("c%d", i), Val: v}
	}
	return out
}

func TestTopCauses(t *testing.T) {
	// 1. Order by value, highest first
	got := TopCauses(ranked(5, 50, 20), DefaultLimit)
	assert.Equal(t, []string{"c1", "c2", "c0"}, got)

	// 2. Truncation
	many := ranked(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	got = TopCauses(many, DefaultLimit)
	require.Len(t, got, 10)
	assert.Equal(t, "c11", got[0])
	assert.Equal(t, "c2", got[9])

	// 3. Ties keep input order
	got = TopCauses(ranked(3, 7, 3, 7), DefaultLimit)
	assert.Equal(t, []string{"c1", "c3", "c0", "c2"}, got)

	// 4. Empty input and non-positive limit
	assert.Equal(t, []string{}, TopCauses(nil, DefaultLimit))
	assert.Equal(t, []string{}, TopCauses(many, 0))
	assert.Equal(t, []string{}, TopCauses(many, -3))
}

func TestTopCausesNaNLast(t *testing.T) {
	nan := math.NaN()
	got := TopCauses(ranked(nan, 1, nan, 9, math.Inf(-1)), DefaultLimit)
	assert.Equal(t, []string{"c3", "c1", "c4", "c0", "c2"}, got)
}

func TestTopCausesKeepsDuplicateNames(t *testing.T) {
	matched := []models.MortalityRecord{
		{CauseName: "Injury", Year: 2018, Val: 10},
		{CauseName: "Disease", Year: 2019, Val: 5},
		{CauseName: "Injury", Year: 2019, Val: 12},
	}
	assert.Equal(t, []string{"Injury", "Injury", "Disease"}, TopCauses(matched, DefaultLimit))
}

func TestTopCausesDoesNotReorderInput(t *testing.T) {
	matched := ranked(1, 3, 2)
	TopCauses(matched, DefaultLimit)
	assert.Equal(t, ranked(1, 3, 2), matched)
}

// Length is min(limit, n) and the backing values never increase.
func TestTopCausesBoundAndOrder(t *testing.T) {
	for n := 0; n <= 25; n++ {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = float64((i * 7919) % 13)
		}
		matched := ranked(vals...)
		got := TopCauses(matched, DefaultLimit)
		require.Len(t, got, min(DefaultLimit, n))

		byName := make(map[string]float64, n)
		for _, r := range matched {
			byName[r.CauseName] = r.Val
		}
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, byName[got[i-1]], byName[got[i]])
		}
	}
}

func TestLocations(t *testing.T) {
	records := []models.MortalityRecord{
		{LocationName: "B"}, {LocationName: "A"}, {LocationName: "B"}, {LocationName: "C"}, {LocationName: "A"},
	}
	assert.Equal(t, []string{"B", "A", "C"}, Locations(records))
	assert.Equal(t, []string{}, Locations(nil))
}
