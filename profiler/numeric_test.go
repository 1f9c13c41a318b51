package profiler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

func newNumericAnalyzer(opts models.AnalysisOptions) numericAnalyzer {
	return numericAnalyzer{opts: opts, caps: DefaultCapabilities()}
}

func getFloat(t *testing.T, r *models.FieldReport, key string) float64 {
	t.Helper()
	v, ok := r.Get(key)
	assert.True(t, ok, "missing key %q", key)
	return v.AsFloat()
}

func TestNumericQuartilesAndOutliers(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	r := newNumericAnalyzer(models.DefaultOptions()).analyze(data, 0, 10)

	assert.InDelta(t, 3.25, getFloat(t, r, KeyQ1), 1e-9)
	assert.InDelta(t, 7.75, getFloat(t, r, KeyQ3), 1e-9)
	assert.InDelta(t, 4.5, getFloat(t, r, KeyIQR), 1e-9)

	outliers, _ := r.Get(KeyOutliers)
	assert.Equal(t, int64(1), outliers.Int)
	assert.InDelta(t, 100, getFloat(t, r, KeyMinOutlier), 1e-9)
	assert.InDelta(t, 100, getFloat(t, r, KeyMaxOutlier), 1e-9)
	assert.InDelta(t, 10, getFloat(t, r, KeyPercentOutliers), 1e-9)
}

func TestNumericOutlierDetailsGated(t *testing.T) {
	opts := models.DefaultOptions()
	opts.NumericOutlierDetails = false
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	r := newNumericAnalyzer(opts).analyze(data, 0, 10)

	// The count is always computed; only the details are optional.
	outliers, _ := r.Get(KeyOutliers)
	assert.Equal(t, models.StatInt, outliers.Kind)
	assert.Equal(t, int64(1), outliers.Int)

	minOutlier, _ := r.Get(KeyMinOutlier)
	assert.True(t, minOutlier.IsNA())
	assert.Equal(t, models.NAOption, minOutlier.Reason)
}

func TestNumericModesTie(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze([]float64{1, 1, 2, 2, 3}, 0, 5)
	modes, _ := r.Get(KeyModes)
	assert.Equal(t, models.StatList, modes.Kind)
	assert.Equal(t, []string{"1.00", "2.00"}, modes.List)
}

func TestNumericNoUniqueMode(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze([]float64{1, 2, 3}, 0, 3)
	modes, _ := r.Get(KeyModes)
	assert.Equal(t, models.StatText, modes.Kind)
	assert.Equal(t, "No unique mode", modes.Text)
}

func TestNumericLowVariance(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze([]float64{5, 5, 5, 5}, 0, 4)

	flag, _ := r.Get(KeyLowVariance)
	assert.True(t, flag.Bool)
	variety, _ := r.Get(KeyVariety)
	assert.Equal(t, int64(1), variety.Int)

	// IQR collapses to zero, so the bin rule has no answer.
	bins, _ := r.Get(KeyOptimalBins)
	assert.True(t, bins.IsNA())
}

func TestNumericFreedmanDiaconisBins(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	r := newNumericAnalyzer(models.DefaultOptions()).analyze(data, 0, 10)

	bins, _ := r.Get(KeyOptimalBins)
	assert.Equal(t, models.StatInt, bins.Kind)
	assert.Equal(t, int64(3), bins.Int)
}

func TestNumericCVWithZeroMean(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze([]float64{-1, 1}, 0, 2)
	cv, _ := r.Get(KeyCV)
	assert.Equal(t, models.StatFloat, cv.Kind)
	assert.True(t, math.IsNaN(cv.Float))
}

func TestNumericEmptySetPolicy(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze(nil, 3, 3)

	status, _ := r.Get(KeyStatus)
	assert.Equal(t, "No valid data (3 conversion errors)", status.Text)

	variety, _ := r.Get(KeyVariety)
	assert.Equal(t, int64(0), variety.Int)
	flag, _ := r.Get(KeyLowVariance)
	assert.False(t, flag.Bool)
	pctInt, _ := r.Get(KeyPercentInteger)
	assert.Equal(t, models.TextStat("0.00%"), pctInt)
	mean, _ := r.Get(KeyMean)
	assert.True(t, mean.IsNA())
}

func TestNumericIntegerDecimalSplit(t *testing.T) {
	data := []float64{1, 2, 2.5, 3.75}
	r := newNumericAnalyzer(models.DefaultOptions()).analyze(data, 0, 4)

	integers, _ := r.Get(KeyIntegerValues)
	assert.Equal(t, int64(2), integers.Int)
	decimals, _ := r.Get(KeyDecimalValues)
	assert.Equal(t, int64(2), decimals.Int)
	assert.InDelta(t, 50, getFloat(t, r, KeyPercentInteger), 1e-9)
}

func TestNumericDistributionShapeInsufficient(t *testing.T) {
	r := newNumericAnalyzer(models.DefaultOptions()).analyze([]float64{1, 2}, 0, 2)
	p, _ := r.Get(KeyNormalityP)
	assert.True(t, p.IsNA())
	assert.Equal(t, models.NAInsufficient, p.Reason)
}

func TestNumericDistributionShapeUnavailable(t *testing.T) {
	caps := Capabilities{Modes: LibraryModes{}, Normality: UnavailableNormality{}}
	na := numericAnalyzer{opts: models.DefaultOptions(), caps: caps}
	r := na.analyze([]float64{1, 2, 3, 4, 5}, 0, 5)

	for _, key := range []string{KeySkewness, KeyKurtosis, KeyNormalityP, KeyLikelyNormal} {
		v, _ := r.Get(key)
		assert.True(t, v.IsNA(), key)
		assert.Equal(t, models.NACapability, v.Reason, key)
	}
}

func TestNumericInfiniteValuesDiscarded(t *testing.T) {
	data := []float64{1, 2, 3, math.Inf(1)}
	r := newNumericAnalyzer(models.DefaultOptions()).analyze(data, 0, 4)
	assert.InDelta(t, 3, getFloat(t, r, KeyMax), 1e-9)
	assert.InDelta(t, 6, getFloat(t, r, KeySum), 1e-9)
}

func TestInterpolatedQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, interpolatedQuantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, interpolatedQuantile(sorted, 0.5), 1e-9)
	assert.True(t, math.IsNaN(interpolatedQuantile(nil, 0.5)))
}
