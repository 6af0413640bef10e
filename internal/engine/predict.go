package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"howwillidie/internal/dataset"
)

// defaultStore parses the embedded dataset on first use. Concurrent first
// callers share a single parse.
var defaultStore = sync.OnceValues(func() (*Store, error) {
	data, err := dataset.Embedded()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetCorrupt, err)
	}
	return Load(data)
})

// Default returns the store built from the embedded dataset.
func Default() (*Store, error) {
	return defaultStore()
}

// Predict returns the leading causes of death for a segment of the embedded
// dataset, highest value first.
func Predict(location string, age uint32, sex string) ([]string, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.Predict(location, age, sex), nil
}

// GetLocations returns the distinct locations of the embedded dataset.
func GetLocations() ([]string, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return s.Locations(), nil
}

// Predict returns up to DefaultLimit cause names for the segment. An unknown
// segment yields an empty slice.
func (s *Store) Predict(location string, age uint32, sex string) []string {
	t0 := time.Now()
	segment := s.Segment(location, age, sex)
	causes := TopCauses(segment, DefaultLimit)
	predictDuration.Observe(time.Since(t0).Seconds())

	result := "hit"
	if len(causes) == 0 {
		result = "empty"
	}
	predictionsTotal.WithLabelValues(result).Inc()

	slog.Debug("segment ranked",
		"location", location,
		"age", age,
		"sex", sex,
		"matched", len(segment),
		"returned", len(causes),
	)
	return causes
}
