package profiler

import (
	"context"
	"unicode"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

// MaxStoredIDs caps the per-field row-id lists kept for selection
// callbacks. Counts are never truncated, only the stored ids.
const MaxStoredIDs = 10000

// RowIterator is the host's lazy row stream. Next returns false when
// the stream is exhausted.
type RowIterator interface {
	Next() (models.Row, bool, error)
	Close() error
}

// Dataset is the host boundary: ordered field descriptors, the total
// row count of the analysis scope, and a row iterator over that scope.
type Dataset interface {
	Fields() ([]models.FieldDescriptor, error)
	TotalRows() (int64, error)
	Rows(ctx context.Context) (RowIterator, error)
}

// ProgressFunc receives throttled collection progress.
type ProgressFunc func(done, total int64)

// FieldAccumulator holds everything collected for one field during the
// single collection pass. Owned exclusively by the run; never mutated
// once analysis begins.
type FieldAccumulator struct {
	Desc      models.FieldDescriptor
	RawValues []models.RawValue
	NullCount int64

	// Numeric fields only.
	Floats             []float64
	ConversionErrors   int64
	ConversionErrorIDs []int64

	// Text fields only, populated when the rarity/non-printable option
	// is enabled. The reported count is recomputed exactly during text
	// analysis; this list only feeds later selection.
	NonPrintableIDs []int64

	// Temporal fields only: original values aligned positionally with
	// RawValues, so the most frequent value can be recovered verbatim.
	Temporals []models.RawValue
}

func newFieldAccumulator(d models.FieldDescriptor) *FieldAccumulator {
	return &FieldAccumulator{Desc: d}
}

func (a *FieldAccumulator) add(id int64, v models.RawValue, trackNonPrintable bool) {
	if v.IsNull() {
		a.NullCount++
		return
	}
	a.RawValues = append(a.RawValues, v)
	switch a.Desc.Kind {
	case models.FieldNumeric:
		if f, ok := v.Float(); ok {
			a.Floats = append(a.Floats, f)
		} else {
			a.ConversionErrors++
			if len(a.ConversionErrorIDs) < MaxStoredIDs {
				a.ConversionErrorIDs = append(a.ConversionErrorIDs, id)
			}
		}
	case models.FieldText:
		if trackNonPrintable && hasNonPrintable(v.CoerceString()) {
			if len(a.NonPrintableIDs) < MaxStoredIDs {
				a.NonPrintableIDs = append(a.NonPrintableIDs, id)
			}
		}
	case models.FieldTemporal:
		a.Temporals = append(a.Temporals, v)
	}
}

// NonNullCount is the number of non-null values seen so far.
func (a *FieldAccumulator) NonNullCount() int64 { return int64(len(a.RawValues)) }

// hasNonPrintable reports whether s contains a character that is not
// printable and not one of tab/newline/carriage return.
func hasNonPrintable(s string) bool {
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

// Collect runs the single collection pass. It returns one accumulator
// per field keyed by name, plus the number of rows actually scanned.
// A context cancellation stops the loop between rows and is returned as
// the error; accumulators stay internally consistent up to that point.
// A single bad value is data, not a fault, and never stops the pass.
func Collect(ctx context.Context, fields []models.FieldDescriptor, iter RowIterator,
	totalRows int64, opts models.AnalysisOptions, progress ProgressFunc) (map[string]*FieldAccumulator, int64, error) {

	accs := make(map[string]*FieldAccumulator, len(fields))
	for _, f := range fields {
		accs[f.Name] = newFieldAccumulator(f)
	}

	step := totalRows / 100
	if step < 1 {
		step = 1
	}

	var scanned int64
	for {
		select {
		case <-ctx.Done():
			return accs, scanned, ctx.Err()
		default:
		}

		row, ok, err := iter.Next()
		if err != nil {
			return accs, scanned, err
		}
		if !ok {
			break
		}
		scanned++

		for i, f := range fields {
			v := models.Null()
			if i < len(row.Values) {
				v = row.Values[i]
			}
			accs[f.Name].add(row.ID, v, opts.TextRarityNonPrintable)
		}

		if progress != nil && (scanned%step == 0 || scanned == totalRows) {
			progress(scanned, totalRows)
		}
	}
	return accs, scanned, nil
}
