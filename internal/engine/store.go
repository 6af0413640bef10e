package engine

import (
	"slices"
	"strconv"

	"howwillidie/internal/models"
)

// Store holds the parsed dataset. It is never mutated after construction and is
// safe to share between goroutines.
type Store struct {
	records     []models.MortalityRecord
	locations   []string
	index       *Index
	fingerprint uint64
}

func newStore(records []models.MortalityRecord, fingerprint uint64) *Store {
	return &Store{
		records:     records,
		locations:   Locations(records),
		index:       NewIndex(records),
		fingerprint: fingerprint,
	}
}

// Records returns a copy of every record, in dataset order.
func (s *Store) Records() []models.MortalityRecord {
	return slices.Clone(s.records)
}

func (s *Store) Len() int { return len(s.records) }

// Locations returns the distinct location names in first-seen order.
func (s *Store) Locations() []string {
	return slices.Clone(s.locations)
}

// Fingerprint is the xxh3 hash of the raw dataset bytes.
func (s *Store) Fingerprint() uint64 { return s.fingerprint }

func (s *Store) FingerprintHex() string {
	return strconv.FormatUint(s.fingerprint, 16)
}

// Info summarises the store for callers that display dataset metadata.
func (s *Store) Info() models.DatasetInfo {
	return models.DatasetInfo{
		Records:     len(s.records),
		Locations:   len(s.locations),
		Fingerprint: s.FingerprintHex(),
	}
}

// Segment returns the records for one (location, age, sex) segment in dataset
// order. It yields the same result as Filter over Records but reads the index.
func (s *Store) Segment(location string, age uint32, sex string) []models.MortalityRecord {
	positions := s.index.Lookup(location, age, sex)
	out := make([]models.MortalityRecord, 0, len(positions))
	for _, p := range positions {
		out = append(out, s.records[p])
	}
	return out
}
