package profiler

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

// lowVarianceEpsilon bounds how close to zero the population stdev may
// be before the field is flagged as low variance.
const lowVarianceEpsilon = 1e-9

type numericAnalyzer struct {
	opts models.AnalysisOptions
	caps Capabilities
}

// analyze computes the numeric statistic block from the successfully
// converted floats. Infinite values are discarded up front; a NaN in a
// result is a computed value, never a sentinel.
func (na numericAnalyzer) analyze(values []float64, conversionErrors int64, nonNull int64) *models.FieldReport {
	r := models.NewFieldReport()
	r.Set(KeyConversionErrors, models.IntStat(conversionErrors))

	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) {
			data = append(data, v)
		}
	}
	count := len(data)

	if count == 0 {
		if conversionErrors == 0 {
			r.Set(KeyStatus, models.TextStat("No valid numeric data"))
		} else {
			r.Set(KeyStatus, models.TextStat(fmt.Sprintf("No valid data (%d conversion errors)", conversionErrors)))
		}
		na.fillEmpty(r)
		return r
	}

	sorted := make([]float64, count)
	copy(sorted, data)
	sort.Float64s(sorted)

	minVal, _ := stats.Min(data)
	maxVal, _ := stats.Max(data)
	sumVal, _ := stats.Sum(data)
	meanVal, _ := stats.Mean(data)
	medianVal, _ := stats.Median(data)
	stdevPop, _ := stats.StandardDeviationPopulation(data)

	r.Set(KeyMin, models.FloatStat(minVal))
	r.Set(KeyMax, models.FloatStat(maxVal))
	r.Set(KeyRange, models.FloatStat(maxVal-minVal))
	r.Set(KeySum, models.FloatStat(sumVal))
	r.Set(KeyMean, models.FloatStat(meanVal))
	r.Set(KeyMedian, models.FloatStat(medianVal))
	r.Set(KeyStdevPop, models.FloatStat(stdevPop))

	modes := na.caps.Modes.Modes(data)
	if len(modes) == 0 {
		r.Set(KeyModes, models.TextStat("No unique mode"))
	} else {
		items := make([]string, len(modes))
		for i, m := range modes {
			items[i] = strconv.FormatFloat(m, 'f', na.opts.DecimalPlaces, 64)
		}
		r.Set(KeyModes, models.ListStat(items))
	}

	variety := distinctCount(sorted)
	r.Set(KeyVariety, models.IntStat(int64(variety)))

	q1 := interpolatedQuantile(sorted, 0.25)
	q3 := interpolatedQuantile(sorted, 0.75)
	iqr := q3 - q1
	r.Set(KeyQ1, models.FloatStat(q1))
	r.Set(KeyQ3, models.FloatStat(q3))
	r.Set(KeyIQR, models.FloatStat(iqr))

	// The outlier count is always computed once the quartiles exist;
	// only min/max outlier and the percentage are option-gated.
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	outlierCount := 0
	minOutlier, maxOutlier := math.NaN(), math.NaN()
	for _, v := range data {
		if v < lower || v > upper {
			outlierCount++
			if math.IsNaN(minOutlier) || v < minOutlier {
				minOutlier = v
			}
			if math.IsNaN(maxOutlier) || v > maxOutlier {
				maxOutlier = v
			}
		}
	}
	r.Set(KeyOutliers, models.IntStat(int64(outlierCount)))
	if na.opts.NumericOutlierDetails {
		r.Set(KeyMinOutlier, models.FloatStat(minOutlier))
		r.Set(KeyMaxOutlier, models.FloatStat(maxOutlier))
		r.Set(KeyPercentOutliers, models.FloatStat(float64(outlierCount)/float64(count)*100))
	} else {
		r.Set(KeyMinOutlier, models.NA(models.NAOption))
		r.Set(KeyMaxOutlier, models.NA(models.NAOption))
		r.Set(KeyPercentOutliers, models.NA(models.NAOption))
	}

	lowVariance := count == 1 ||
		math.Abs(stdevPop) < lowVarianceEpsilon ||
		(variety == 1 && count > 1)
	r.Set(KeyLowVariance, models.BoolStat(lowVariance))

	var zeros, positives, negatives int64
	for _, v := range data {
		switch {
		case v == 0:
			zeros++
		case v > 0:
			positives++
		default:
			negatives++
		}
	}
	r.Set(KeyZeros, models.IntStat(zeros))
	r.Set(KeyPositives, models.IntStat(positives))
	r.Set(KeyNegatives, models.IntStat(negatives))

	cv := math.NaN()
	if meanVal != 0 {
		cv = stdevPop / meanVal * 100
	}
	r.Set(KeyCV, models.FloatStat(cv))

	na.integerDecimalBlock(r, data, count, variety, minVal, maxVal, iqr)
	na.distributionShapeBlock(r, data)
	na.percentileBlock(r, sorted)
	return r
}

func (na numericAnalyzer) integerDecimalBlock(r *models.FieldReport, data []float64, count, variety int, minVal, maxVal, iqr float64) {
	if !na.opts.NumericIntDecimal {
		r.Set(KeyIntegerValues, models.NA(models.NAOption))
		r.Set(KeyDecimalValues, models.NA(models.NAOption))
		r.Set(KeyPercentInteger, models.NA(models.NAOption))
		r.Set(KeyOptimalBins, models.NA(models.NAOption))
		return
	}

	var integers int64
	for _, v := range data {
		if v == math.Floor(v) {
			integers++
		}
	}
	r.Set(KeyIntegerValues, models.IntStat(integers))
	r.Set(KeyDecimalValues, models.IntStat(int64(count)-integers))
	r.Set(KeyPercentInteger, models.FloatStat(float64(integers)/float64(count)*100))

	r.Set(KeyOptimalBins, optimalBins(count, variety, minVal, maxVal, iqr))
}

// optimalBins applies the Freedman-Diaconis rule with the documented
// fallbacks: 1 bin when all values are identical, distinct count when
// the IQR collapses.
func optimalBins(count, variety int, minVal, maxVal, iqr float64) models.StatValue {
	if count <= 1 || math.IsNaN(iqr) || iqr <= 0 {
		return models.NA(models.NAGeneric)
	}
	binWidth := 2 * iqr / math.Cbrt(float64(count))
	if binWidth <= 0 {
		return models.NA(models.NAGeneric)
	}
	dataRange := maxVal - minVal
	switch {
	case dataRange > 0:
		return models.IntStat(int64(math.Ceil(dataRange / binWidth)))
	case dataRange == 0:
		return models.IntStat(1)
	default:
		if variety > 0 {
			return models.IntStat(int64(variety))
		}
		return models.IntStat(1)
	}
}

func (na numericAnalyzer) distributionShapeBlock(r *models.FieldReport, data []float64) {
	keys := []string{KeySkewness, KeyKurtosis, KeyNormalityP, KeyLikelyNormal}

	if !na.opts.NumericDistShape {
		for _, k := range keys {
			r.Set(k, models.NA(models.NAOption))
		}
		return
	}
	if !na.caps.Normality.Available() {
		for _, k := range keys {
			r.Set(k, models.NA(models.NACapability))
		}
		return
	}

	r.Set(KeySkewness, models.FloatStat(Skewness(data)))
	r.Set(KeyKurtosis, models.FloatStat(Kurtosis(data)))
	if len(data) >= 3 {
		p := na.caps.Normality.PValue(data)
		r.Set(KeyNormalityP, models.FloatStat(p))
		r.Set(KeyLikelyNormal, models.BoolStat(p > 0.05))
	} else {
		r.Set(KeyNormalityP, models.NA(models.NAInsufficient))
		r.Set(KeyLikelyNormal, models.NA(models.NAInsufficient))
	}
}

func (na numericAnalyzer) percentileBlock(r *models.FieldReport, sorted []float64) {
	keys := []string{KeyPctl1, KeyPctl5, KeyPctl95, KeyPctl99}
	if !na.opts.NumericAdvPercentiles {
		for _, k := range keys {
			r.Set(k, models.NA(models.NAOption))
		}
		return
	}
	for i, p := range []float64{0.01, 0.05, 0.95, 0.99} {
		r.Set(keys[i], models.FloatStat(interpolatedQuantile(sorted, p)))
	}
}

// fillEmpty applies the empty-set policy: count-like stats report 0,
// flags report false, percent-integer reports the literal "0.00%", and
// everything else is the N/A sentinel. Callers depend on this exact
// shape.
func (na numericAnalyzer) fillEmpty(r *models.FieldReport) {
	zeroKeys := map[string]bool{
		KeyVariety: true, KeyZeros: true, KeyPositives: true, KeyNegatives: true,
		KeyOutliers: true, KeyIntegerValues: true, KeyDecimalValues: true,
		KeyPercentOutliers: true, KeyMinOutlier: true, KeyMaxOutlier: true,
	}
	boolKeys := map[string]bool{KeyLowVariance: true, KeyLikelyNormal: true}
	skip := map[string]bool{
		KeyNonNullCount: true, KeyNullCount: true, KeyPercentNull: true,
		KeyConversionErrors: true, KeyStatus: true,
	}
	for _, key := range StatKeysNumeric {
		if skip[key] || r.Has(key) {
			continue
		}
		switch {
		case zeroKeys[key]:
			r.Set(key, models.IntStat(0))
		case boolKeys[key]:
			r.Set(key, models.BoolStat(false))
		case key == KeyPercentInteger:
			r.Set(key, models.TextStat("0.00%"))
		default:
			r.Set(key, models.NA(models.NAGeneric))
		}
	}
}

// interpolatedQuantile computes quantile p over a sorted sample using
// linear interpolation between closest ranks.
func interpolatedQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}
	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

func distinctCount(sorted []float64) int {
	n := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			n++
		}
	}
	return n
}
