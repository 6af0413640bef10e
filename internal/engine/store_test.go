package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howwillidie/internal/models"
)

func TestSegmentMatchesFilter(t *testing.T) {
	records := segmentFixture()
	store := newStore(records, 1)

	for _, loc := range []string{"Worldland", "worldland", "Atlantis"} {
		for _, sex := range []string{"Male", "Female", "male", ""} {
			for _, age := range []uint32{0, 14, 15, 17, 19, 20, 24, 25, 94, 95, 120, OpenEnded} {
				want := Filter(records, loc, age, sex)
				got := store.Segment(loc, age, sex)
				assert.Equal(t, want, got, "%s/%d/%s", loc, age, sex)
			}
		}
	}
}

func TestSegmentOnEmbeddedDataset(t *testing.T) {
	store, err := Default()
	require.NoError(t, err)
	records := store.Records()

	for _, loc := range store.Locations() {
		for _, sex := range []string{"Male", "Female"} {
			for _, age := range []uint32{0, 3, 17, 42, 80, 97} {
				assert.Equal(t, Filter(records, loc, age, sex), store.Segment(loc, age, sex))
			}
		}
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	store := newStore(segmentFixture(), 1)

	recs := store.Records()
	recs[0].CauseName = "mutated"
	assert.Equal(t, "Injury", store.Records()[0].CauseName)

	locs := store.Locations()
	locs[0] = "mutated"
	assert.Equal(t, "Worldland", store.Locations()[0])
}

func TestStoreInfo(t *testing.T) {
	store := newStore(segmentFixture(), 0xabc)
	assert.Equal(t, models.DatasetInfo{Records: 8, Locations: 2, Fingerprint: "abc"}, store.Info())
}

func TestDefaultIsMemoized(t *testing.T) {
	var wg sync.WaitGroup
	stores := make([]*Store, 8)
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := Default()
			assert.NoError(t, err)
			stores[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range stores[1:] {
		assert.Same(t, stores[0], s)
	}
}
