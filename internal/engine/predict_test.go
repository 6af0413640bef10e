package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePredict(t *testing.T) {
	store, err := Load(csvOf(
		`1,Deaths,10,Worldland,1,Male,8,15-19 years,700,Injury,1,Number,2019,50,60,40`,
		`1,Deaths,10,Worldland,1,Male,8,15-19 years,400,Disease,1,Number,2019,80,90,70`,
		`1,Deaths,10,Worldland,2,Female,8,15-19 years,700,Injury,1,Number,2019,10,12,8`,
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"Disease", "Injury"}, store.Predict("Worldland", 17, "Male"))
	assert.Equal(t, []string{"Injury"}, store.Predict("Worldland", 17, "Female"))
	assert.Empty(t, store.Predict("Worldland", 30, "Male"))
	assert.Empty(t, store.Predict("Atlantis", 17, "Male"))
}

func TestPredictEmbedded(t *testing.T) {
	causes, err := Predict("Global", 42, "Female")
	require.NoError(t, err)
	assert.Len(t, causes, DefaultLimit)

	causes, err = Predict("Atlantis", 42, "Female")
	require.NoError(t, err)
	assert.Empty(t, causes)
}

func TestGetLocations(t *testing.T) {
	locations, err := GetLocations()
	require.NoError(t, err)
	assert.Contains(t, locations, "Global")
	assert.Contains(t, locations, "Japan")

	seen := make(map[string]bool, len(locations))
	for _, l := range locations {
		assert.False(t, seen[l], "duplicate location %q", l)
		seen[l] = true
	}

	store, err := Default()
	require.NoError(t, err)
	for _, r := range store.Records() {
		assert.True(t, seen[r.LocationName], "missing location %q", r.LocationName)
	}
}
