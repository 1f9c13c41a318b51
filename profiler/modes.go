package profiler

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// ModeComputer finds the most frequent value(s) of a sample. An empty
// result means no value repeats, i.e. there is no unique mode.
type ModeComputer interface {
	Modes(data []float64) []float64
}

// LibraryModes delegates to the statistics library. This is the
// capability-backed implementation selected by default.
type LibraryModes struct{}

func (LibraryModes) Modes(data []float64) []float64 {
	modes, err := stats.Mode(data)
	if err != nil {
		return nil
	}
	sort.Float64s(modes)
	return modes
}

// FallbackModes counts frequencies by hand. Kept as the manual
// fallback so mode computation never depends on the library being
// usable for a given sample.
type FallbackModes struct{}

func (FallbackModes) Modes(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	counts := make(map[float64]int, len(data))
	best := 0
	for _, v := range data {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	if best <= 1 {
		return nil
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes
}
