package engine

import (
	"errors"
	"fmt"
)

// ErrDatasetCorrupt is returned when the dataset cannot be parsed into records.
// A corrupt dataset is a packaging defect; no records are usable.
var ErrDatasetCorrupt = errors.New("dataset corrupt")

// CorruptError locates a parse failure inside the dataset.
//
// Line is 1-based and counts the header. Column is empty when the failure is not
// tied to a single field (e.g. a wrong column count).
type CorruptError struct {
	Line   int
	Column string
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: line %d: %v", ErrDatasetCorrupt, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d, column %s: %v", ErrDatasetCorrupt, e.Line, e.Column, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrDatasetCorrupt }
