package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

// CanonicalOrder returns the statistic rows of a result in display
// order: the fixed per-kind key lists first (deduplicated, present
// keys only), then any remaining keys alphabetically.
func CanonicalOrder(res *models.AnalysisResult) []string {
	present := map[string]bool{}
	for _, rep := range res.Reports {
		for _, k := range rep.Keys() {
			present[k] = true
		}
	}

	var order []string
	seen := map[string]bool{}
	for _, group := range [][]string{
		profiler.StatKeysNumeric,
		profiler.StatKeysText,
		profiler.StatKeysTemporal,
		profiler.StatKeysOther,
		profiler.StatKeysError,
	} {
		for _, k := range group {
			if seen[k] || !present[k] {
				continue
			}
			seen[k] = true
			order = append(order, k)
		}
	}

	var extras []string
	for k := range present {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(order, extras...)
}

// RenderValue formats a single statistic for display or export.
// A computed NaN renders as "NaN"; an NA sentinel renders its reason.
func RenderValue(key string, v models.StatValue, decimalPlaces int) string {
	switch v.Kind {
	case models.StatNA:
		return v.Reason.String()
	case models.StatInt:
		return fmt.Sprintf("%d", v.Int)
	case models.StatFloat:
		if math.IsNaN(v.Float) {
			return "NaN"
		}
		if key == profiler.KeyNormalityP {
			return fmt.Sprintf("%.4g", v.Float)
		}
		return fmt.Sprintf("%.*f", decimalPlaces, v.Float)
	case models.StatBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case models.StatText:
		return v.Text
	case models.StatList:
		if key == profiler.KeyModes {
			return strings.Join(v.List, ", ")
		}
		return strings.Join(v.List, "\n")
	default:
		return ""
	}
}

func cellValue(rep *models.FieldReport, key string, decimalPlaces int) string {
	v, ok := rep.Get(key)
	if !ok {
		return ""
	}
	return RenderValue(key, v, decimalPlaces)
}

func buildWriter(res *models.AnalysisResult, decimalPlaces int) table.Writer {
	t := table.NewWriter()

	header := table.Row{"Statistic"}
	for _, name := range res.FieldOrder {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, key := range CanonicalOrder(res) {
		row := table.Row{key}
		for _, name := range res.FieldOrder {
			row = append(row, cellValue(res.Reports[name], key, decimalPlaces))
		}
		t.AppendRow(row)
	}
	return t
}

// Pretty renders the result as a bordered terminal table, fields as
// columns and statistics as rows.
func Pretty(res *models.AnalysisResult, decimalPlaces int) string {
	t := buildWriter(res, decimalPlaces)
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// CSV renders the result in RFC 4180 form.
func CSV(res *models.AnalysisResult, decimalPlaces int) string {
	return buildWriter(res, decimalPlaces).RenderCSV()
}

// TSV renders a clipboard-friendly projection: tab-separated cells with
// embedded newlines flattened to " | " so multi-line list statistics
// stay on one spreadsheet row.
func TSV(res *models.AnalysisResult, decimalPlaces int) string {
	var b strings.Builder

	b.WriteString("Statistic")
	for _, name := range res.FieldOrder {
		b.WriteByte('\t')
		b.WriteString(flattenCell(name))
	}
	b.WriteByte('\n')

	for _, key := range CanonicalOrder(res) {
		b.WriteString(flattenCell(key))
		for _, name := range res.FieldOrder {
			b.WriteByte('\t')
			b.WriteString(flattenCell(cellValue(res.Reports[name], key, decimalPlaces)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", " | ")
	return strings.ReplaceAll(s, "\t", " ")
}
