package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

func sampleResult() *models.AnalysisResult {
	rep := models.NewFieldReport()
	rep.Set(profiler.KeyNonNullCount, models.IntStat(3))
	rep.Set(profiler.KeyNullCount, models.IntStat(1))
	rep.Set(profiler.KeyMean, models.FloatStat(2.345))
	rep.Set(profiler.KeyModes, models.ListStat([]string{"1.00", "2.00"}))
	rep.Set(profiler.KeyTopValues, models.ListStat([]string{"'a': 2", "'b': 1"}))
	rep.Set("Custom Extra", models.TextStat("x"))

	return &models.AnalysisResult{
		FieldOrder: []string{"f"},
		Reports:    map[string]*models.FieldReport{"f": rep},
	}
}

func TestCanonicalOrder(t *testing.T) {
	order := CanonicalOrder(sampleResult())

	assert.Equal(t, profiler.KeyNonNullCount, order[0])
	assert.Equal(t, profiler.KeyNullCount, order[1])
	// Unknown keys come last.
	assert.Equal(t, "Custom Extra", order[len(order)-1])

	seen := map[string]int{}
	for _, k := range order {
		seen[k]++
	}
	assert.Equal(t, 1, seen[profiler.KeyNonNullCount], "shared keys must not repeat")
}

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "N/A (Opt.)", RenderValue(profiler.KeyMean, models.NA(models.NAOption), 2))
	assert.Equal(t, "NaN", RenderValue(profiler.KeyCV, models.FloatStat(math.NaN()), 2))
	assert.Equal(t, "2.35", RenderValue(profiler.KeyMean, models.FloatStat(2.345), 2))
	assert.Equal(t, "42", RenderValue(profiler.KeyVariety, models.IntStat(42), 2))
	assert.Equal(t, "true", RenderValue(profiler.KeyLowVariance, models.BoolStat(true), 2))

	// Scientific notation keeps tiny p-values readable.
	assert.Equal(t, "1.234e-07", RenderValue(profiler.KeyNormalityP, models.FloatStat(1.234e-7), 2))

	// Modes join on one line, other lists stay multi-line.
	assert.Equal(t, "1.00, 2.00", RenderValue(profiler.KeyModes, models.ListStat([]string{"1.00", "2.00"}), 2))
	assert.Equal(t, "'a': 2\n'b': 1", RenderValue(profiler.KeyTopValues, models.ListStat([]string{"'a': 2", "'b': 1"}), 2))
}

func TestTSVFlattensNewlines(t *testing.T) {
	out := TSV(sampleResult(), 2)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Statistic\tf", lines[0])
	for _, line := range lines {
		assert.Equal(t, 2, len(strings.Split(line, "\t")), line)
	}
	assert.Contains(t, out, "'a': 2 | 'b': 1")
}

func TestPrettyIncludesFieldsAndKeys(t *testing.T) {
	out := Pretty(sampleResult(), 2)
	assert.Contains(t, out, "f")
	assert.Contains(t, out, profiler.KeyMean)
	assert.Contains(t, out, "2.35")
}

func TestCSVOutput(t *testing.T) {
	out := CSV(sampleResult(), 2)
	assert.Contains(t, out, "Statistic,f")
	assert.Contains(t, out, profiler.KeyNonNullCount+",3")
}
