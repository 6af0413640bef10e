package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	arrowcsv "github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/zeebo/xxh3"

	"howwillidie/internal/models"
)

// Column positions in the dataset. The header must list them in this order.
const (
	colMeasureID = iota
	colMeasureName
	colLocationID
	colLocationName
	colSexID
	colSexName
	colAgeID
	colAgeName
	colCauseID
	colCauseName
	colMetricID
	colMetricName
	colYear
	colVal
	colUpper
	colLower
	numColumns
)

// Schema is the typed layout of the dataset.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "measure_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "measure_name", Type: arrow.BinaryTypes.String},
	{Name: "location_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "location_name", Type: arrow.BinaryTypes.String},
	{Name: "sex_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "sex_name", Type: arrow.BinaryTypes.String},
	{Name: "age_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "age_name", Type: arrow.BinaryTypes.String},
	{Name: "cause_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "cause_name", Type: arrow.BinaryTypes.String},
	{Name: "metric_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "metric_name", Type: arrow.BinaryTypes.String},
	{Name: "year", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "val", Type: arrow.PrimitiveTypes.Float64},
	{Name: "upper", Type: arrow.PrimitiveTypes.Float64},
	{Name: "lower", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// Load parses a CSV dataset into a Store.
//
// Any malformed row fails the whole load with an error matching ErrDatasetCorrupt.
func Load(data []byte) (*Store, error) {
	start := time.Now()

	// 1. Header
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	// 2. Typed decode, one row per arrow record so failures map to a line
	rdr := arrowcsv.NewReader(bytes.NewReader(data), Schema,
		arrowcsv.WithHeader(true),
		arrowcsv.WithAllocator(memory.NewGoAllocator()),
		arrowcsv.WithChunk(1),
		arrowcsv.WithNullReader(false, ""),
	)
	defer rdr.Release()

	records := make([]models.MortalityRecord, 0, bytes.Count(data, []byte{'\n'}))
	line := 1
	for rdr.Next() {
		line++
		rec := rdr.Record()
		if err := rdr.Err(); err != nil {
			return nil, &CorruptError{Line: line, Column: nullColumn(rec), Err: err}
		}
		if col := nullColumn(rec); col != "" {
			return nil, &CorruptError{Line: line, Column: col, Err: errors.New("empty value")}
		}
		records = appendRows(records, rec)
	}
	if err := rdr.Err(); err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			line = perr.Line
		} else {
			line++
		}
		return nil, &CorruptError{Line: line, Err: err}
	}

	store := newStore(records, xxh3.Hash(data))
	datasetRecords.Set(float64(store.Len()))
	slog.Info("dataset loaded",
		"records", store.Len(),
		"locations", len(store.locations),
		"fingerprint", store.FingerprintHex(),
		"elapsed", time.Since(start),
	)
	return store, nil
}

func checkHeader(data []byte) error {
	first, _, _ := bytes.Cut(data, []byte{'\n'})
	header, err := csv.NewReader(bytes.NewReader(first)).Read()
	if err != nil {
		return &CorruptError{Line: 1, Err: fmt.Errorf("reading header: %w", err)}
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	want := make([]string, numColumns)
	for i, f := range Schema.Fields() {
		want[i] = f.Name
	}
	if !slices.Equal(header, want) {
		return &CorruptError{Line: 1, Err: fmt.Errorf("header %q, want %q", header, want)}
	}
	return nil
}

// nullColumn names the first column holding a null in rec. arrow appends a null
// for empty numeric fields and for fields it failed to convert.
func nullColumn(rec arrow.Record) string {
	if rec == nil {
		return ""
	}
	for i, col := range rec.Columns() {
		if col.NullN() > 0 {
			return rec.ColumnName(i)
		}
	}
	return ""
}

func appendRows(dst []models.MortalityRecord, rec arrow.Record) []models.MortalityRecord {
	u32 := func(i int) *array.Uint32 { return rec.Column(i).(*array.Uint32) }
	str := func(i int) *array.String { return rec.Column(i).(*array.String) }
	f64 := func(i int) *array.Float64 { return rec.Column(i).(*array.Float64) }

	for j := 0; j < int(rec.NumRows()); j++ {
		dst = append(dst, models.MortalityRecord{
			MeasureID:    u32(colMeasureID).Value(j),
			MeasureName:  str(colMeasureName).Value(j),
			LocationID:   u32(colLocationID).Value(j),
			LocationName: str(colLocationName).Value(j),
			SexID:        u32(colSexID).Value(j),
			SexName:      str(colSexName).Value(j),
			AgeID:        u32(colAgeID).Value(j),
			AgeName:      str(colAgeName).Value(j),
			CauseID:      u32(colCauseID).Value(j),
			CauseName:    str(colCauseName).Value(j),
			MetricID:     u32(colMetricID).Value(j),
			MetricName:   str(colMetricName).Value(j),
			Year:         u32(colYear).Value(j),
			Val:          f64(colVal).Value(j),
			Upper:        f64(colUpper).Value(j),
			Lower:        f64(colLower).Value(j),
		})
	}
	return dst
}
