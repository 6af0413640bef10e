package engine

import (
	"github.com/RoaringBitmap/roaring/v2"

	"howwillidie/internal/models"
)

type ageSpan struct {
	start, end uint32
	ok         bool
}

// Index is an inverted index over record positions: one bitmap per location name
// and one per sex name. Age labels are parsed once at build time.
type Index struct {
	byLocation map[string]*roaring.Bitmap
	bySex      map[string]*roaring.Bitmap
	ages       []ageSpan
}

func NewIndex(records []models.MortalityRecord) *Index {
	idx := &Index{
		byLocation: make(map[string]*roaring.Bitmap),
		bySex:      make(map[string]*roaring.Bitmap),
		ages:       make([]ageSpan, len(records)),
	}
	for i := range records {
		r := &records[i]
		pos := uint32(i)
		add(idx.byLocation, r.LocationName, pos)
		add(idx.bySex, r.SexName, pos)

		start, end, ok := ParseAgeRange(r.AgeName)
		idx.ages[i] = ageSpan{start: start, end: end, ok: ok}
	}
	return idx
}

func add(m map[string]*roaring.Bitmap, key string, pos uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(pos)
}

// Lookup returns the ascending positions of records in the segment.
func (idx *Index) Lookup(location string, age uint32, sex string) []uint32 {
	loc, ok := idx.byLocation[location]
	if !ok {
		return nil
	}
	sx, ok := idx.bySex[sex]
	if !ok {
		return nil
	}

	var out []uint32
	it := roaring.And(loc, sx).Iterator()
	for it.HasNext() {
		pos := it.Next()
		span := idx.ages[pos]
		if span.ok && span.start <= age && age <= span.end {
			out = append(out, pos)
		}
	}
	return out
}
