package models

import (
	"strconv"
	"strings"
	"time"
)

// FieldKind is the closed set of analyzable field types. The analyzer
// set is fixed, so dispatch is a plain switch rather than open-ended
// type inspection.
type FieldKind int

const (
	FieldNumeric FieldKind = iota
	FieldText
	FieldTemporal
	FieldOther
)

func (k FieldKind) String() string {
	switch k {
	case FieldNumeric:
		return "numeric"
	case FieldText:
		return "text"
	case FieldTemporal:
		return "temporal"
	default:
		return "other"
	}
}

// FieldDescriptor identifies one column of the dataset. Supplied by the
// host, consumed read-only.
type FieldDescriptor struct {
	Name string
	Kind FieldKind
}

func (d FieldDescriptor) IsNumeric() bool { return d.Kind == FieldNumeric }

// ValueKind tags the variant carried by a RawValue.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueNumber
	ValueString
	ValueDate
	ValueDateTime
)

// RawValue is a single cell as provided by the host. Temporal variants
// carry a validity flag; an invalid temporal value profiles as null.
type RawValue struct {
	Kind   ValueKind
	Number float64
	Text   string
	Time   time.Time
	Valid  bool
}

func Null() RawValue                 { return RawValue{Kind: ValueNull} }
func NumberValue(f float64) RawValue { return RawValue{Kind: ValueNumber, Number: f, Valid: true} }
func StringValue(s string) RawValue  { return RawValue{Kind: ValueString, Text: s, Valid: true} }
func DateValue(t time.Time) RawValue { return RawValue{Kind: ValueDate, Time: t, Valid: true} }
func DateTimeValue(t time.Time) RawValue {
	return RawValue{Kind: ValueDateTime, Time: t, Valid: true}
}
func InvalidDate() RawValue     { return RawValue{Kind: ValueDate} }
func InvalidDateTime() RawValue { return RawValue{Kind: ValueDateTime} }

// IsNull reports whether the value profiles as missing. Invalid
// temporal values fold into the null bucket.
func (v RawValue) IsNull() bool {
	if v.Kind == ValueNull {
		return true
	}
	if v.IsTemporal() && !v.Valid {
		return true
	}
	return false
}

func (v RawValue) IsTemporal() bool {
	return v.Kind == ValueDate || v.Kind == ValueDateTime
}

// HasTime reports whether the value carries a time-of-day component.
func (v RawValue) HasTime() bool { return v.Kind == ValueDateTime }

// Float attempts the numeric conversion used for numeric fields.
func (v RawValue) Float() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Number, true
	case ValueString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CoerceString renders the value the way the text analyzer sees it.
func (v RawValue) CoerceString() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ValueString:
		return v.Text
	case ValueDate:
		return v.Time.Format("2006-01-02")
	case ValueDateTime:
		return v.Time.Format("2006-01-02T15:04:05")
	default:
		return ""
	}
}

// Row is one record of the dataset. Values are aligned positionally
// with the dataset's field descriptors. ID is a stable integer the host
// can use for later "select these rows" callbacks.
type Row struct {
	ID     int64
	Values []RawValue
}

// AnalysisOptions is the immutable per-run configuration.
type AnalysisOptions struct {
	NumericDistShape       bool
	NumericAdvPercentiles  bool
	NumericIntDecimal      bool
	NumericOutlierDetails  bool
	TextCaseAnalysis       bool
	TextRarityNonPrintable bool
	TemporalTimeWeekend    bool

	// TopValuesLimit must be >= 1, DecimalPlaces >= 0.
	TopValuesLimit int
	DecimalPlaces  int

	// Scope labels the row subset under analysis ("all rows" or a
	// host-defined selection).
	Scope string

	// KeepNumericSamples retains converted float slices on the result
	// so the caller can render histograms without a second pass.
	KeepNumericSamples bool
}

func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		NumericDistShape:       true,
		NumericAdvPercentiles:  true,
		NumericIntDecimal:      true,
		NumericOutlierDetails:  true,
		TextCaseAnalysis:       true,
		TextRarityNonPrintable: true,
		TemporalTimeWeekend:    true,
		TopValuesLimit:         5,
		DecimalPlaces:          2,
		Scope:                  "all rows",
	}
}
