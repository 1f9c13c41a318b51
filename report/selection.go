package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

// Selection is a derived row filter for one statistic cell. Exactly one
// of Expression or IDs is populated: count statistics with a recorded
// id list select by id, everything else by filter expression.
type Selection struct {
	// Expression is a SQL-style filter over the source rows.
	Expression string
	// IDs selects explicit rows; Capped warns that the stored list was
	// truncated and the selection is a subset of the matching rows.
	IDs    []int64
	Capped bool
}

// ErrNotSelectable marks statistic cells with no row-selection
// semantics.
var ErrNotSelectable = errors.New("statistic does not support row selection")

// ForStatistic derives the selection for a double-clicked cell.
func ForStatistic(res *models.AnalysisResult, field, statKey string) (Selection, error) {
	rep, ok := res.Reports[field]
	if !ok {
		return Selection{}, fmt.Errorf("no report for field %q", field)
	}
	q := quoteIdent(field)

	switch statKey {
	case profiler.KeyNullCount:
		return Selection{Expression: q + " IS NULL"}, nil

	case profiler.KeyEmptyStrings:
		return Selection{Expression: q + " = ''"}, nil

	case profiler.KeyLeadTrailSpaces:
		return Selection{Expression: fmt.Sprintf("%s != trim(%s)", q, q)}, nil

	case profiler.KeyConversionErrors:
		list, ok := res.ConversionErrors[field]
		if !ok || len(list.IDs) == 0 {
			return Selection{}, fmt.Errorf("%w: no conversion error rows recorded for %q", ErrNotSelectable, field)
		}
		return Selection{IDs: list.IDs, Capped: list.Capped}, nil

	case profiler.KeyNonPrintableChars:
		list, ok := res.NonPrintable[field]
		if !ok || len(list.IDs) == 0 {
			return Selection{}, fmt.Errorf("%w: no non-printable rows recorded for %q", ErrNotSelectable, field)
		}
		return Selection{IDs: list.IDs, Capped: list.Capped}, nil

	case profiler.KeyOutliers:
		return outlierSelection(rep, q)

	case profiler.KeyTopValues:
		return topValueSelection(rep, q)
	}
	return Selection{}, fmt.Errorf("%w: %q", ErrNotSelectable, statKey)
}

// outlierSelection rebuilds the IQR fence from the reported quartiles
// so the expression matches exactly the rows the analyzer counted.
func outlierSelection(rep *models.FieldReport, q string) (Selection, error) {
	q1, ok1 := rep.Get(profiler.KeyQ1)
	q3, ok3 := rep.Get(profiler.KeyQ3)
	iqr, okI := rep.Get(profiler.KeyIQR)
	if !ok1 || !ok3 || !okI || !q1.IsNumber() || !q3.IsNumber() || !iqr.IsNumber() {
		return Selection{}, fmt.Errorf("%w: quartiles unavailable", ErrNotSelectable)
	}
	lower := q1.AsFloat() - 1.5*iqr.AsFloat()
	upper := q3.AsFloat() + 1.5*iqr.AsFloat()
	return Selection{
		Expression: fmt.Sprintf("(%s < %g OR %s > %g)", q, lower, q, upper),
	}, nil
}

// topValueSelection selects rows equal to the most frequent value,
// using the verbatim (untruncated) value kept on the report.
func topValueSelection(rep *models.FieldReport, q string) (Selection, error) {
	top := rep.TopValue
	if top == nil {
		return Selection{}, fmt.Errorf("%w: no top value recorded", ErrNotSelectable)
	}
	switch top.Kind {
	case models.ValueNumber:
		return Selection{Expression: fmt.Sprintf("%s = %g", q, top.Number)}, nil
	case models.ValueDate:
		return Selection{Expression: fmt.Sprintf("%s = date('%s')", q, top.Time.Format("2006-01-02"))}, nil
	case models.ValueDateTime:
		return Selection{Expression: fmt.Sprintf("%s = datetime('%s')", q, top.Time.Format("2006-01-02 15:04:05"))}, nil
	case models.ValueString:
		return Selection{Expression: fmt.Sprintf("%s = '%s'", q, escapeLiteral(top.Text))}, nil
	}
	return Selection{}, fmt.Errorf("%w: top value is null", ErrNotSelectable)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
