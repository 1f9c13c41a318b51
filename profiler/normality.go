package profiler

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalityTester is the optional statistics capability behind the
// distribution-shape block. When unavailable, only the affected
// statistics degrade to "N/A (capability missing)".
type NormalityTester interface {
	Available() bool
	// PValue returns the p-value of a normality test over data
	// (len(data) >= 3).
	PValue(data []float64) float64
}

// MomentNormality approximates a normality test from sample skewness
// and excess kurtosis, mapping the combined statistic through a
// chi-squared distribution. Not a true Shapiro-Wilk; close enough to
// flag clearly non-normal samples.
type MomentNormality struct{}

func (MomentNormality) Available() bool { return true }

func (MomentNormality) PValue(data []float64) float64 {
	skew := Skewness(data)
	kurt := Kurtosis(data)
	if math.IsNaN(skew) || math.IsNaN(kurt) {
		return 1.0
	}
	testStat := math.Abs(skew) + math.Abs(kurt)/2
	chi := distuv.ChiSquared{K: 2}
	return 1 - chi.CDF(testStat*testStat)
}

// UnavailableNormality models a missing capability.
type UnavailableNormality struct{}

func (UnavailableNormality) Available() bool          { return false }
func (UnavailableNormality) PValue([]float64) float64 { return math.NaN() }

// Capabilities bundles the optional statistic strategies, selected once
// at startup and never re-checked inside the hot path.
type Capabilities struct {
	Modes     ModeComputer
	Normality NormalityTester
}

func DefaultCapabilities() Capabilities {
	return Capabilities{Modes: LibraryModes{}, Normality: MomentNormality{}}
}

// Skewness is the population (biased) skewness g1 = m3 / m2^1.5.
// Returns NaN for zero variance or fewer than one value.
func Skewness(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(data, nil)
	m2 := stat.MomentAbout(2, data, mean, nil)
	if m2 == 0 {
		return math.NaN()
	}
	m3 := stat.MomentAbout(3, data, mean, nil)
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis is the population excess kurtosis g2 = m4 / m2^2 - 3
// (Fisher convention, normal == 0).
func Kurtosis(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(data, nil)
	m2 := stat.MomentAbout(2, data, mean, nil)
	if m2 == 0 {
		return math.NaN()
	}
	m4 := stat.MomentAbout(4, data, mean, nil)
	return m4/(m2*m2) - 3
}
