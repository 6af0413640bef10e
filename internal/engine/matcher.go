package engine

import (
	"math"
	"strconv"
	"strings"

	"howwillidie/internal/models"
)

// OpenEnded is the upper bound of an "<A>+" age label.
const OpenEnded = math.MaxUint32

// ParseAgeRange turns an age label such as "15-19 years" or "95+ years" into an
// inclusive range. ok is false for any other shape, and for "<A>-<B>" with A > B.
func ParseAgeRange(label string) (start, end uint32, ok bool) {
	label = strings.TrimSuffix(label, " years")

	if lo, hi, found := strings.Cut(label, "-"); found {
		a, err := parseAge(lo)
		if err != nil {
			return 0, 0, false
		}
		b, err := parseAge(hi)
		if err != nil || a > b {
			return 0, 0, false
		}
		return a, b, true
	}

	if lo, found := strings.CutSuffix(label, "+"); found {
		a, err := parseAge(lo)
		if err != nil {
			return 0, 0, false
		}
		return a, OpenEnded, true
	}

	return 0, 0, false
}

// parseAge accepts only plain decimal digits; strconv alone would allow "+5".
func parseAge(s string) (uint32, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// Matches reports whether r belongs to the (location, age, sex) segment.
// Location and sex compare exactly; an unparseable age label never matches.
func Matches(r *models.MortalityRecord, location string, age uint32, sex string) bool {
	if r.LocationName != location || r.SexName != sex {
		return false
	}
	start, end, ok := ParseAgeRange(r.AgeName)
	return ok && start <= age && age <= end
}

// Filter returns the records of one segment, preserving input order. No match is
// an empty slice.
func Filter(records []models.MortalityRecord, location string, age uint32, sex string) []models.MortalityRecord {
	out := make([]models.MortalityRecord, 0)
	for i := range records {
		if Matches(&records[i], location, age, sex) {
			out = append(out, records[i])
		}
	}
	return out
}
