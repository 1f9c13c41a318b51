package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

// Run-level fatal preconditions, detected before collection begins.
// None of them produces a partial report map.
var (
	ErrNoDataset      = errors.New("no dataset supplied")
	ErrNoFields       = errors.New("no fields selected")
	ErrNoRows         = errors.New("no rows in analysis scope")
	ErrInvalidOptions = errors.New("invalid analysis options")
)

// Profiler runs field analyses. It holds no state between runs; every
// run gets its own accumulators and result.
type Profiler struct {
	Caps Capabilities
	// Now supplies the run's current date for the temporal analyzer.
	Now func() time.Time
}

func New() *Profiler {
	return &Profiler{Caps: DefaultCapabilities(), Now: time.Now}
}

// Analyze performs one full profiling run: a single collection pass
// over the dataset's rows, then sequential per-field analysis. A fault
// in one field's analysis becomes that field's Error entry and never
// aborts the others. Context cancellation between rows aborts the run.
func (p *Profiler) Analyze(ctx context.Context, ds Dataset, opts models.AnalysisOptions, progress ProgressFunc) (*models.AnalysisResult, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}
	if opts.TopValuesLimit < 1 || opts.DecimalPlaces < 0 {
		return nil, fmt.Errorf("%w: top values limit %d, decimal places %d",
			ErrInvalidOptions, opts.TopValuesLimit, opts.DecimalPlaces)
	}

	fields, err := ds.Fields()
	if err != nil {
		return nil, fmt.Errorf("reading field descriptors: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	totalRows, err := ds.TotalRows()
	if err != nil {
		return nil, fmt.Errorf("reading row count: %w", err)
	}
	if totalRows == 0 {
		return nil, ErrNoRows
	}

	iter, err := ds.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening row iterator: %w", err)
	}
	defer iter.Close()

	result := &models.AnalysisResult{
		RunID:            uuid.NewV4().String(),
		Scope:            opts.Scope,
		Reports:          map[string]*models.FieldReport{},
		ConversionErrors: map[string]models.IDList{},
		NonPrintable:     map[string]models.IDList{},
	}
	if result.Scope == "" {
		result.Scope = "all rows"
	}
	for _, f := range fields {
		result.FieldOrder = append(result.FieldOrder, f.Name)
	}

	accs, scanned, err := Collect(ctx, fields, iter, totalRows, opts, progress)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		// Iterator faults mid-stream degrade to per-field error
		// entries, mirroring the per-field recoverable policy.
		result.TotalRows = scanned
		for _, f := range fields {
			rep := models.NewFieldReport()
			rep.Set(KeyError, models.TextStat(fmt.Sprintf("Row iteration error: %v", err)))
			result.Reports[f.Name] = rep
		}
		return result, nil
	}
	result.TotalRows = scanned

	for _, f := range fields {
		acc := accs[f.Name]
		result.Reports[f.Name] = p.fieldReport(f, acc, opts, scanned)

		if f.Kind == models.FieldNumeric && len(acc.ConversionErrorIDs) > 0 {
			result.ConversionErrors[f.Name] = models.IDList{
				IDs:    acc.ConversionErrorIDs,
				Capped: acc.ConversionErrors > int64(len(acc.ConversionErrorIDs)),
			}
		}
		if f.Kind == models.FieldText && len(acc.NonPrintableIDs) > 0 {
			result.NonPrintable[f.Name] = models.IDList{
				IDs:    acc.NonPrintableIDs,
				Capped: len(acc.NonPrintableIDs) == MaxStoredIDs,
			}
		}
		if f.Kind == models.FieldNumeric && opts.KeepNumericSamples {
			if result.NumericSamples == nil {
				result.NumericSamples = map[string][]float64{}
			}
			result.NumericSamples[f.Name] = acc.Floats
		}
	}
	return result, nil
}

func (p *Profiler) fieldReport(f models.FieldDescriptor, acc *FieldAccumulator, opts models.AnalysisOptions, scanned int64) *models.FieldReport {
	rep := models.NewFieldReport()
	nonNull := acc.NonNullCount()

	rep.Set(KeyNullCount, models.IntStat(acc.NullCount))
	pctNull := 0.0
	if scanned > 0 {
		pctNull = float64(acc.NullCount) / float64(scanned) * 100
	}
	rep.Set(KeyPercentNull, models.TextStat(formatPercent(pctNull, opts.DecimalPlaces)))
	rep.Set(KeyNonNullCount, models.IntStat(nonNull))

	if nonNull == 0 {
		if f.Kind == models.FieldNumeric && acc.ConversionErrors > 0 {
			rep.Set(KeyStatus, models.TextStat(fmt.Sprintf("All values Null or conversion errors (%d)", acc.ConversionErrors)))
		} else {
			rep.Set(KeyStatus, models.TextStat("All Null or Empty"))
		}
	} else {
		frag, err := p.analyzeField(f, acc, opts)
		if err != nil {
			rep.Set(KeyError, models.TextStat(err.Error()))
		} else {
			rep.Merge(frag)
		}
	}

	rep.Set(KeyMismatchHint, mismatchHint(f, acc, rep))
	return rep
}

// analyzeField dispatches on the closed field-kind variant. Panics are
// contained here so one field's fault cannot abort the run.
func (p *Profiler) analyzeField(f models.FieldDescriptor, acc *FieldAccumulator, opts models.AnalysisOptions) (rep *models.FieldReport, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			rep = nil
			err = fmt.Errorf("analysis function error: %v", rec)
		}
	}()

	switch f.Kind {
	case models.FieldNumeric:
		rep = numericAnalyzer{opts: opts, caps: p.Caps}.analyze(acc.Floats, acc.ConversionErrors, acc.NonNullCount())
	case models.FieldText:
		rep = textAnalyzer{opts: opts}.analyze(acc.RawValues, acc.NonNullCount())
	case models.FieldTemporal:
		rep = temporalAnalyzer{opts: opts, now: p.Now()}.analyze(acc.Temporals, acc.NonNullCount())
	default:
		rep = models.NewFieldReport()
		rep.Set(KeyStatus, models.TextStat("Analysis not implemented for this type"))
	}
	return rep, nil
}

// mismatchHint is a best-effort suggestion that the field's content
// statistically resembles a different type.
func mismatchHint(f models.FieldDescriptor, acc *FieldAccumulator, rep *models.FieldReport) models.StatValue {
	nonNull := acc.NonNullCount()
	switch {
	case f.Kind == models.FieldText && nonNull > 0:
		var numericLike int64
		for _, v := range acc.RawValues {
			if looksNumeric(v.CoerceString()) {
				numericLike++
			}
		}
		if float64(numericLike)/float64(nonNull) > 0.9 {
			return models.TextStat("High % of numeric-like strings. Consider if this field should be numeric.")
		}
	case f.Kind == models.FieldNumeric && nonNull > 20:
		if v, ok := rep.Get(KeyVariety); ok && v.Kind == models.StatInt && v.Int < 15 {
			return models.TextStat("Low variety for a numeric field. Consider if this is categorical or a code.")
		}
	}
	return models.NA(models.NAGeneric)
}

// looksNumeric reports whether s is digits with at most one decimal
// point, after trimming surrounding whitespace.
func looksNumeric(s string) bool {
	s = strings.TrimSpace(strings.Replace(s, ".", "", 1))
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
