package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

// HeaderAnalysis is the outcome of inspecting a file's first row.
type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2})?$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}\.\d+$`),
}

var identScrub = regexp.MustCompile("[^a-zA-Z0-9]+")

// AnalyzeHeaders decides whether the first row is a header row or data,
// and produces clean, unique column names either way.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}

	headerLike := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLike++
		}
	}

	// Strict majority: an even split reads as data.
	if float64(headerLike)/float64(len(firstRow)) > 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader reports whether text reads like a column name rather
// than a data value: not a number, not a date, and at least 30% letters.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, p := range datePatterns {
		if p.MatchString(text) {
			return false
		}
	}

	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders deduplicates names by suffixing a counter.
func ValidateHeaders(headers []string) []string {
	seen := map[string]int{}
	result := make([]string, len(headers))

	for i, header := range headers {
		original := header
		counter := 1
		for {
			if _, exists := seen[header]; !exists {
				seen[header]++
				break
			}
			header = fmt.Sprintf("%s_%d", original, counter)
			counter++
		}
		result[i] = header
	}
	return result
}

// cleanHeaderName transliterates to ASCII and scrubs the name down to a
// safe lowercase identifier, falling back to a positional name.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}

	cleaned := unidecode.Unidecode(header)
	cleaned = identScrub.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}

func isNumericData(values []string) bool {
	if len(values) == 0 {
		return false
	}
	numeric := 0
	for _, value := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			numeric++
		}
	}
	return float64(numeric)/float64(len(values)) >= 0.8
}

func isDateData(values []string) bool {
	if len(values) == 0 {
		return false
	}
	dates := 0
	for _, value := range values {
		if _, _, ok := parseTemporal(strings.TrimSpace(value)); ok {
			dates++
		}
	}
	return float64(dates)/float64(len(values)) >= 0.8
}
