package profiler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeComputersAgree(t *testing.T) {
	cases := []struct {
		name string
		data []float64
		want []float64
	}{
		{"tie", []float64{1, 1, 2, 2, 3}, []float64{1, 2}},
		{"single", []float64{5, 5, 5}, []float64{5}},
		{"no repeats", []float64{1, 2, 3}, nil},
		{"empty", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lib := LibraryModes{}.Modes(tc.data)
			fallback := FallbackModes{}.Modes(tc.data)
			assert.ElementsMatch(t, tc.want, lib)
			assert.ElementsMatch(t, tc.want, fallback)
		})
	}
}

func TestSkewnessKurtosisDegenerate(t *testing.T) {
	assert.True(t, math.IsNaN(Skewness([]float64{3, 3, 3})), "zero variance should be NaN")
	assert.True(t, math.IsNaN(Kurtosis(nil)), "empty sample should be NaN")
}

func TestMomentNormalityRange(t *testing.T) {
	symmetric := []float64{-2, -1, 0, 1, 2}
	p := MomentNormality{}.PValue(symmetric)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}
