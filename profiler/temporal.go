package profiler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type temporalAnalyzer struct {
	opts models.AnalysisOptions
	now  time.Time
}

// analyze profiles the original date/datetime values. A date-only value
// orders as midnight of its day but is never rendered with a time
// component.
func (ta temporalAnalyzer) analyze(values []models.RawValue, nonNull int64) *models.FieldReport {
	r := models.NewFieldReport()
	dp := ta.opts.DecimalPlaces

	valid := make([]models.RawValue, 0, len(values))
	hasTimeOverall := false
	for _, v := range values {
		if v.IsTemporal() && v.Valid {
			valid = append(valid, v)
			if v.HasTime() {
				hasTimeOverall = true
			}
		}
	}

	if nonNull == 0 || len(valid) == 0 {
		if nonNull == 0 {
			r.Set(KeyStatus, models.TextStat("No date data"))
		} else {
			r.Set(KeyStatus, models.TextStat("No valid date objects parsed from non-null values"))
		}
		ta.fillEmpty(r)
		return r
	}

	minV, maxV := valid[0], valid[0]
	for _, v := range valid[1:] {
		if v.Time.Before(minV.Time) {
			minV = v
		}
		if v.Time.After(maxV.Time) {
			maxV = v
		}
	}
	layout := "2006-01-02"
	if hasTimeOverall {
		layout = "2006-01-02 15:04:05"
	}
	r.Set(KeyMinDate, models.TextStat(minV.Time.Format(layout)))
	r.Set(KeyMaxDate, models.TextStat(maxV.Time.Format(layout)))

	yearCounts := map[int]int64{}
	monthCounts := map[int]int64{}
	weekdayCounts := map[int]int64{}
	for _, v := range valid {
		yearCounts[v.Time.Year()]++
		monthCounts[int(v.Time.Month())]++
		weekdayCounts[mondayIndex(v.Time.Weekday())]++
	}
	r.Set(KeyCommonYears, models.TextStat(topComponents(yearCounts, 3, func(y int) string { return fmt.Sprintf("%d", y) })))
	r.Set(KeyCommonMonths, models.TextStat(topComponents(monthCounts, 3, func(m int) string { return fmt.Sprintf("%d", m) })))
	r.Set(KeyCommonDays, models.TextStat(topComponents(weekdayCounts, 3, func(d int) string { return weekdayNames[d] })))

	// Strictly before/after today, date parts only.
	today := dateOnly(ta.now)
	var before, after int64
	for _, v := range valid {
		d := dateOnly(v.Time)
		if d.Before(today) {
			before++
		} else if d.After(today) {
			after++
		}
	}
	r.Set(KeyDatesBefore, models.IntStat(before))
	r.Set(KeyDatesAfter, models.IntStat(after))

	ta.topValues(r, valid)
	ta.timeWeekendBlock(r, valid, dp)
	return r
}

func (ta temporalAnalyzer) topValues(r *models.FieldReport, valid []models.RawValue) {
	counts := map[string]int64{}
	firstRaw := map[string]models.RawValue{}
	for _, v := range valid {
		key := v.CoerceString()
		counts[key]++
		if _, ok := firstRaw[key]; !ok {
			firstRaw[key] = v
		}
	}
	ranked := rankByCount(counts)
	raw := firstRaw[ranked[0].value]
	r.TopValue = &raw

	items := make([]string, 0, ta.opts.TopValuesLimit)
	for i, vc := range ranked {
		if i >= ta.opts.TopValuesLimit {
			break
		}
		items = append(items, fmt.Sprintf("'%s': %d", vc.value, vc.count))
	}
	r.Set(KeyTopValues, models.ListStat(items))
}

func (ta temporalAnalyzer) timeWeekendBlock(r *models.FieldReport, valid []models.RawValue, dp int) {
	if !ta.opts.TemporalTimeWeekend {
		for _, k := range []string{KeyCommonHours, KeyPercentMidnight, KeyPercentNoon, KeyPercentWeekend, KeyPercentWeekday} {
			r.Set(k, models.NA(models.NAOption))
		}
		return
	}

	var withTime []models.RawValue
	for _, v := range valid {
		if v.HasTime() {
			withTime = append(withTime, v)
		}
	}
	if len(withTime) > 0 {
		hourCounts := map[int]int64{}
		var midnight, noon int64
		for _, v := range withTime {
			h, m, s := v.Time.Clock()
			hourCounts[h]++
			if h == 0 && m == 0 && s == 0 && v.Time.Nanosecond() == 0 {
				midnight++
			}
			if h == 12 && m == 0 && s == 0 && v.Time.Nanosecond() == 0 {
				noon++
			}
		}
		total := float64(len(withTime))
		r.Set(KeyCommonHours, models.TextStat(topHours(hourCounts)))
		r.Set(KeyPercentMidnight, models.TextStat(formatPercent(float64(midnight)/total*100, dp)))
		r.Set(KeyPercentNoon, models.TextStat(formatPercent(float64(noon)/total*100, dp)))
	} else {
		r.Set(KeyCommonHours, models.NA(models.NANoTimeData))
		r.Set(KeyPercentMidnight, models.NA(models.NANoTimeData))
		r.Set(KeyPercentNoon, models.NA(models.NANoTimeData))
	}

	var weekend int64
	for _, v := range valid {
		wd := v.Time.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}
	total := float64(len(valid))
	r.Set(KeyPercentWeekend, models.TextStat(formatPercent(float64(weekend)/total*100, dp)))
	r.Set(KeyPercentWeekday, models.TextStat(formatPercent(float64(int64(len(valid))-weekend)/total*100, dp)))
}

func (ta temporalAnalyzer) fillEmpty(r *models.FieldReport) {
	dp := ta.opts.DecimalPlaces
	skip := map[string]bool{
		KeyNonNullCount: true, KeyNullCount: true, KeyPercentNull: true, KeyStatus: true,
	}
	for _, key := range StatKeysTemporal {
		if skip[key] || r.Has(key) {
			continue
		}
		switch {
		case key == KeyDatesBefore || key == KeyDatesAfter:
			r.Set(key, models.IntStat(0))
		case strings.HasPrefix(key, "%"):
			r.Set(key, models.TextStat(formatPercent(0, dp)))
		default:
			r.Set(key, models.NA(models.NAGeneric))
		}
	}
}

// topComponents renders the N most frequent components as
// "label:count" pairs, ties broken by ascending component.
func topComponents(counts map[int]int64, n int, label func(int) string) string {
	type pair struct {
		component int
		count     int64
	}
	pairs := make([]pair, 0, len(counts))
	for c, cnt := range counts {
		pairs = append(pairs, pair{c, cnt})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].component < pairs[j].component
	})
	parts := make([]string, 0, n)
	for i, p := range pairs {
		if i >= n {
			break
		}
		parts = append(parts, fmt.Sprintf("%s:%d", label(p.component), p.count))
	}
	return strings.Join(parts, ", ")
}

// topHours renders the three most frequent hours as "HH:00 (count)".
func topHours(counts map[int]int64) string {
	type pair struct {
		hour  int
		count int64
	}
	pairs := make([]pair, 0, len(counts))
	for h, c := range counts {
		pairs = append(pairs, pair{h, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].hour < pairs[j].hour
	})
	parts := make([]string, 0, 3)
	for i, p := range pairs {
		if i >= 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%02d:00 (%d)", p.hour, p.count))
	}
	return strings.Join(parts, ", ")
}

// mondayIndex maps time.Weekday (Sunday==0) to the Mon..Sun order used
// in reports.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
