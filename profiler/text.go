package profiler

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
)

// stopWords is the closed list of common English function words dropped
// from word-frequency counting.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true,
	"will": true, "with": true,
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	urlPattern   = regexp.MustCompile(`https?://[^\s/$.?#].[^\s]*`)
	// Tokenization keeps letters, digits and internal hyphens.
	wordScrub = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)
)

const topValuePreviewLen = 50

type textAnalyzer struct {
	opts models.AnalysisOptions
}

func (ta textAnalyzer) analyze(raws []models.RawValue, nonNull int64) *models.FieldReport {
	r := models.NewFieldReport()
	dp := ta.opts.DecimalPlaces

	if nonNull == 0 {
		r.Set(KeyStatus, models.TextStat("No text data"))
		ta.fillEmpty(r)
		return r
	}

	strValues := make([]string, len(raws))
	firstRaw := make(map[string]models.RawValue, len(raws))
	for i, v := range raws {
		s := v.CoerceString()
		strValues[i] = s
		if _, ok := firstRaw[s]; !ok {
			firstRaw[s] = v
		}
	}

	var emptyCount int64
	for _, s := range strValues {
		if s == "" {
			emptyCount++
		}
	}
	r.Set(KeyEmptyStrings, models.IntStat(emptyCount))
	r.Set(KeyPercentEmpty, models.TextStat(formatPercent(float64(emptyCount)/float64(nonNull)*100, dp)))

	nonEmpty := make([]string, 0, len(strValues))
	for _, s := range strValues {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}

	if len(nonEmpty) > 0 {
		minLen, maxLen, totalLen := len([]rune(nonEmpty[0])), 0, 0
		for _, s := range nonEmpty {
			n := len([]rune(s))
			if n < minLen {
				minLen = n
			}
			if n > maxLen {
				maxLen = n
			}
			totalLen += n
		}
		r.Set(KeyMinLength, models.IntStat(int64(minLen)))
		r.Set(KeyMaxLength, models.IntStat(int64(maxLen)))
		r.Set(KeyAvgLength, models.FloatStat(float64(totalLen)/float64(len(nonEmpty))))
	} else {
		r.Set(KeyMinLength, models.NA(models.NAGeneric))
		r.Set(KeyMaxLength, models.NA(models.NAGeneric))
		r.Set(KeyAvgLength, models.NA(models.NAGeneric))
	}

	counts := map[string]int64{}
	for _, s := range strValues {
		counts[s]++
	}
	r.Set(KeyVariety, models.IntStat(int64(len(counts))))

	ranked := rankByCount(counts)
	if len(ranked) > 0 {
		top := ranked[0].value
		raw := firstRaw[top]
		r.TopValue = &raw

		items := make([]string, 0, ta.opts.TopValuesLimit)
		for i, vc := range ranked {
			if i >= ta.opts.TopValuesLimit {
				break
			}
			items = append(items, fmt.Sprintf("'%s': %d", previewValue(vc.value), vc.count))
		}
		r.Set(KeyTopValues, models.ListStat(items))
	} else {
		r.Set(KeyTopValues, models.NA(models.NAGeneric))
	}

	if ta.opts.TextRarityNonPrintable {
		var once, nonPrintable int64
		for v, c := range counts {
			if c == 1 && v != "" {
				once++
			}
		}
		// Recomputed exactly here; the collector's capped id list only
		// feeds selection.
		for _, s := range strValues {
			if hasNonPrintable(s) {
				nonPrintable++
			}
		}
		r.Set(KeyOccurringOnce, models.IntStat(once))
		r.Set(KeyNonPrintableChars, models.IntStat(nonPrintable))
	} else {
		r.Set(KeyOccurringOnce, models.NA(models.NAOption))
		r.Set(KeyNonPrintableChars, models.NA(models.NAOption))
	}

	ta.caseBlock(r, nonEmpty)

	var leadTrail int64
	for _, s := range nonEmpty {
		if s != strings.TrimSpace(s) {
			leadTrail++
		}
	}
	r.Set(KeyLeadTrailSpaces, models.IntStat(leadTrail))

	r.Set(KeyTopWords, topWords(nonEmpty))

	var emails, urls int64
	for _, s := range nonEmpty {
		if emailPattern.MatchString(s) {
			emails++
		}
		if urlPattern.MatchString(s) {
			urls++
		}
	}
	r.Set(KeyPatternMatches, models.TextStat(fmt.Sprintf("Emails: %d, URLs: %d", emails, urls)))

	return r
}

// caseBlock classifies each non-empty string into exactly one of
// upper/title/lower/mixed, in that priority order, so the four
// percentages sum to 100.
func (ta textAnalyzer) caseBlock(r *models.FieldReport, nonEmpty []string) {
	dp := ta.opts.DecimalPlaces
	if !ta.opts.TextCaseAnalysis {
		for _, k := range []string{KeyPercentUppercase, KeyPercentLowercase, KeyPercentTitlecase, KeyPercentMixedCase, KeyInternalSpaces} {
			r.Set(k, models.NA(models.NAOption))
		}
		return
	}
	if len(nonEmpty) == 0 {
		zero := formatPercent(0, dp)
		for _, k := range []string{KeyPercentUppercase, KeyPercentLowercase, KeyPercentTitlecase, KeyPercentMixedCase} {
			r.Set(k, models.TextStat(zero))
		}
		r.Set(KeyInternalSpaces, models.IntStat(0))
		return
	}

	var upper, lower, title, mixed, internalSpaces int64
	for _, s := range nonEmpty {
		switch {
		case isUpperString(s):
			upper++
		case isTitleString(s):
			title++
		case isLowerString(s):
			lower++
		default:
			mixed++
		}
		if strings.Contains(strings.TrimSpace(s), "  ") {
			internalSpaces++
		}
	}
	total := float64(len(nonEmpty))
	r.Set(KeyPercentUppercase, models.TextStat(formatPercent(float64(upper)/total*100, dp)))
	r.Set(KeyPercentLowercase, models.TextStat(formatPercent(float64(lower)/total*100, dp)))
	r.Set(KeyPercentTitlecase, models.TextStat(formatPercent(float64(title)/total*100, dp)))
	r.Set(KeyPercentMixedCase, models.TextStat(formatPercent(float64(mixed)/total*100, dp)))
	r.Set(KeyInternalSpaces, models.IntStat(internalSpaces))
}

func (ta textAnalyzer) fillEmpty(r *models.FieldReport) {
	dp := ta.opts.DecimalPlaces
	zeroKeys := map[string]bool{
		KeyEmptyStrings: true, KeyLeadTrailSpaces: true, KeyInternalSpaces: true,
		KeyVariety: true, KeyOccurringOnce: true, KeyNonPrintableChars: true,
	}
	skip := map[string]bool{
		KeyNonNullCount: true, KeyNullCount: true, KeyPercentNull: true, KeyStatus: true,
	}
	for _, key := range StatKeysText {
		if skip[key] || r.Has(key) {
			continue
		}
		switch {
		case zeroKeys[key]:
			r.Set(key, models.IntStat(0))
		case key == KeyPercentEmpty || strings.Contains(key, "case") || strings.Contains(key, "Case"):
			r.Set(key, models.TextStat(formatPercent(0, dp)))
		default:
			r.Set(key, models.NA(models.NAGeneric))
		}
	}
}

type valueCount struct {
	value string
	count int64
}

// rankByCount orders by descending frequency, ties broken by ascending
// lexicographic value.
func rankByCount(counts map[string]int64) []valueCount {
	ranked := make([]valueCount, 0, len(counts))
	for v, c := range counts {
		ranked = append(ranked, valueCount{v, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].value < ranked[j].value
	})
	return ranked
}

func previewValue(s string) string {
	if s == "" {
		return "(Empty String)"
	}
	runes := []rune(s)
	if len(runes) > topValuePreviewLen {
		return string(runes[:topValuePreviewLen]) + "..."
	}
	return s
}

func topWords(nonEmpty []string) models.StatValue {
	wordCounts := map[string]int64{}
	for _, text := range nonEmpty {
		cleaned := wordScrub.ReplaceAllString(strings.ToLower(text), "")
		for _, word := range strings.Fields(cleaned) {
			word = strings.Trim(word, "-")
			if word == "" || stopWords[word] || isAllDigits(word) {
				continue
			}
			wordCounts[word]++
		}
	}
	if len(wordCounts) == 0 {
		return models.NA(models.NANoWords)
	}
	ranked := rankByCount(wordCounts)
	items := make([]string, 0, 10)
	for i, wc := range ranked {
		if i >= 10 {
			break
		}
		items = append(items, fmt.Sprintf("%s:%d", wc.value, wc.count))
	}
	return models.ListStat(items)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func formatPercent(v float64, dp int) string {
	return fmt.Sprintf("%.*f%%", dp, v)
}

// Case predicates follow the usual string-method semantics: a string is
// "upper" when it has cased characters and none of them is lowercase,
// and "title" when every word starts with an upper/title rune followed
// only by lowercase runes.

func isUpperString(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isLowerString(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isTitleString(s string) bool {
	prevCased := false
	hasCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			hasCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}
