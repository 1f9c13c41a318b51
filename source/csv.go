package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

// typeSampleLimit bounds how many non-empty cells per column feed the
// field-kind inference.
const typeSampleLimit = 1000

var temporalLayouts = []struct {
	layout  string
	hasTime bool
}{
	{"2006-01-02 15:04:05.999999", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02", false},
	{"02.01.2006", false},
	{"02/01/2006", false},
}

// parseTemporal tries the supported date/datetime layouts in order of
// specificity.
func parseTemporal(s string) (time.Time, bool, bool) {
	for _, l := range temporalLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, l.hasTime, true
		}
	}
	return time.Time{}, false, false
}

// CSVSource is a fully loaded delimited file. Row ids are 1-based data
// row positions, stable across runs for selection callbacks.
type CSVSource struct {
	fields []models.FieldDescriptor
	rows   []models.Row
}

// OpenCSV reads a (possibly compressed or zipped) CSV file.
func OpenCSV(path string) (*CSVSource, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	src, err := FromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return src, nil
}

// FromReader parses delimited data: header detection on the first row,
// field-kind inference by sampling, then typed cell conversion.
func FromReader(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	firstRow, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading first row: %w", err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, fmt.Errorf("empty first row")
	}

	var records [][]string
	if analysis.FirstRowIsData {
		records = append(records, analysis.FirstDataRow)
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}

	fields := inferFields(analysis.Headers, records)
	rows := make([]models.Row, len(records))
	for i, rec := range records {
		values := make([]models.RawValue, len(fields))
		for j, f := range fields {
			cell := ""
			if j < len(rec) {
				cell = rec[j]
			}
			values[j] = convertCell(f.Kind, cell)
		}
		rows[i] = models.Row{ID: int64(i + 1), Values: values}
	}
	return &CSVSource{fields: fields, rows: rows}, nil
}

// inferFields samples non-empty cells per column: mostly dates makes a
// temporal field, mostly numbers a numeric one, anything else text.
func inferFields(headers []string, records [][]string) []models.FieldDescriptor {
	fields := make([]models.FieldDescriptor, len(headers))
	for col, name := range headers {
		var sample []string
		for _, rec := range records {
			if len(sample) >= typeSampleLimit {
				break
			}
			if col < len(rec) {
				if s := strings.TrimSpace(rec[col]); s != "" {
					sample = append(sample, s)
				}
			}
		}
		kind := models.FieldText
		switch {
		case isDateData(sample):
			kind = models.FieldTemporal
		case isNumericData(sample):
			kind = models.FieldNumeric
		}
		fields[col] = models.FieldDescriptor{Name: name, Kind: kind}
	}
	return fields
}

// convertCell maps one cell to the typed value the analyzers expect.
// Empty cells are missing for numeric and temporal fields but are real
// empty strings for text fields.
func convertCell(kind models.FieldKind, cell string) models.RawValue {
	switch kind {
	case models.FieldNumeric:
		if strings.TrimSpace(cell) == "" {
			return models.Null()
		}
		// Kept as a string so failed conversions are counted per field.
		return models.StringValue(cell)
	case models.FieldTemporal:
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			return models.Null()
		}
		t, hasTime, ok := parseTemporal(trimmed)
		if !ok {
			return models.InvalidDateTime()
		}
		if hasTime {
			return models.DateTimeValue(t)
		}
		return models.DateValue(t)
	default:
		return models.StringValue(cell)
	}
}

func (s *CSVSource) Fields() ([]models.FieldDescriptor, error) { return s.fields, nil }

func (s *CSVSource) TotalRows() (int64, error) { return int64(len(s.rows)), nil }

func (s *CSVSource) Rows(ctx context.Context) (profiler.RowIterator, error) {
	return &sliceIterator{rows: s.rows}, nil
}

type sliceIterator struct {
	rows []models.Row
	pos  int
}

func (it *sliceIterator) Next() (models.Row, bool, error) {
	if it.pos >= len(it.rows) {
		return models.Row{}, false, nil
	}
	row := it.rows[it.pos]
	it.pos++
	return row, true, nil
}

func (it *sliceIterator) Close() error { return nil }
