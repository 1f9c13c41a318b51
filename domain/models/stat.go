package models

import "math"

// NAReason distinguishes why a statistic could not be computed. A
// computed NaN (e.g. CV with zero mean) is a real float value and is
// never represented as an NA sentinel.
type NAReason int

const (
	NAGeneric NAReason = iota
	NAOption
	NACapability
	NAInsufficient
	NANoTimeData
	NANoWords
)

func (r NAReason) String() string {
	switch r {
	case NAOption:
		return "N/A (Opt.)"
	case NACapability:
		return "N/A (capability missing)"
	case NAInsufficient:
		return "N/A (<3 valid)"
	case NANoTimeData:
		return "N/A (No time data)"
	case NANoWords:
		return "N/A (No words found)"
	default:
		return "N/A"
	}
}

// StatKind tags the variant carried by a StatValue.
type StatKind int

const (
	StatNA StatKind = iota
	StatInt
	StatFloat
	StatBool
	StatText
	StatList
)

// StatValue is the tagged union stored under each statistic key.
// Sentinel "N/A" states are a distinct variant instead of strings mixed
// into numeric values.
type StatValue struct {
	Kind   StatKind
	Int    int64
	Float  float64
	Bool   bool
	Text   string
	List   []string
	Reason NAReason
}

func IntStat(v int64) StatValue         { return StatValue{Kind: StatInt, Int: v} }
func FloatStat(v float64) StatValue     { return StatValue{Kind: StatFloat, Float: v} }
func BoolStat(v bool) StatValue         { return StatValue{Kind: StatBool, Bool: v} }
func TextStat(s string) StatValue       { return StatValue{Kind: StatText, Text: s} }
func ListStat(items []string) StatValue { return StatValue{Kind: StatList, List: items} }
func NA(reason NAReason) StatValue      { return StatValue{Kind: StatNA, Reason: reason} }

func (v StatValue) IsNA() bool { return v.Kind == StatNA }

// IsNumber reports whether the value carries a usable float, which the
// selection layer needs before reconstructing fence expressions.
func (v StatValue) IsNumber() bool {
	switch v.Kind {
	case StatFloat:
		return !math.IsNaN(v.Float)
	case StatInt:
		return true
	default:
		return false
	}
}

func (v StatValue) AsFloat() float64 {
	if v.Kind == StatInt {
		return float64(v.Int)
	}
	return v.Float
}

// FieldReport is the ordered statistic map produced for one field.
// Immutable once returned from a run.
type FieldReport struct {
	keys   []string
	values map[string]StatValue

	// TopValue is the most frequent value kept verbatim (untruncated,
	// original type) for selection-by-value. Nil when no non-null
	// values were seen.
	TopValue *RawValue
}

func NewFieldReport() *FieldReport {
	return &FieldReport{values: map[string]StatValue{}}
}

// Set stores a value, preserving first-insertion order of keys.
func (r *FieldReport) Set(key string, v StatValue) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r *FieldReport) Get(key string) (StatValue, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *FieldReport) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns statistic names in insertion order.
func (r *FieldReport) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Merge appends every entry of other, preserving order.
func (r *FieldReport) Merge(other *FieldReport) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
	if other.TopValue != nil {
		r.TopValue = other.TopValue
	}
}

// IDList is a bounded list of row identifiers. Capped marks that the
// storage cap truncated the list; the associated count statistic is
// never truncated.
type IDList struct {
	IDs    []int64
	Capped bool
}

// AnalysisResult is the full output of one profiling run. It carries no
// state shared with prior runs; callers own any caching across runs.
type AnalysisResult struct {
	RunID      string
	Scope      string
	TotalRows  int64
	FieldOrder []string
	Reports    map[string]*FieldReport

	// Auxiliary row-id lists for later selection callbacks.
	ConversionErrors map[string]IDList
	NonPrintable     map[string]IDList

	// NumericSamples is populated only when the run options request it.
	NumericSamples map[string][]float64
}
