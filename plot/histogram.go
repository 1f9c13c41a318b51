package plot

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Histogram is a binned view of one numeric field's samples.
type Histogram struct {
	Field  string
	Labels []string
	Counts []int64
}

// BuildHistogram bins values into the requested number of equal-width
// intervals. Bins < 1 falls back to the square-root rule. All values
// identical collapse to a single bin.
func BuildHistogram(field string, values []float64, bins int) (*Histogram, error) {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no finite values for field %q", field)
	}
	if bins < 1 {
		bins = int(math.Ceil(math.Sqrt(float64(len(data)))))
	}

	sort.Float64s(data)
	min, max := data[0], data[len(data)-1]
	if min == max {
		return &Histogram{
			Field:  field,
			Labels: []string{fmt.Sprintf("%g", min)},
			Counts: []int64{int64(len(data))},
		}, nil
	}

	width := (max - min) / float64(bins)
	h := &Histogram{
		Field:  field,
		Labels: make([]string, bins),
		Counts: make([]int64, bins),
	}
	for i := 0; i < bins; i++ {
		lo := min + float64(i)*width
		h.Labels[i] = fmt.Sprintf("%.4g", lo)
	}
	for _, v := range data {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h, nil
}

// Render writes the histogram as a standalone HTML bar chart.
func (h *Histogram) Render(path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    h.Field,
			Subtitle: fmt.Sprintf("%d bins", len(h.Counts)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: h.Field}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)

	series := make([]opts.BarData, len(h.Counts))
	for i, c := range h.Counts {
		series[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(h.Labels).AddSeries("count", series)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
