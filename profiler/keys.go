package profiler

// Statistic keys form a fixed vocabulary. Presentation maps them to
// localized labels; the core and the export surface use them verbatim.
const (
	KeyNonNullCount = "Non-Null Count"
	KeyNullCount    = "Null Count"
	KeyPercentNull  = "% Null"
	KeyStatus       = "Status"
	KeyError        = "Error"
	KeyMismatchHint = "Data Type Mismatch Hint"

	KeyConversionErrors = "Conversion Errors"
	KeyMin              = "Min"
	KeyMax              = "Max"
	KeyRange            = "Range"
	KeySum              = "Sum"
	KeyMean             = "Mean"
	KeyMedian           = "Median"
	KeyStdevPop         = "Stdev (pop)"
	KeyModes            = "Mode(s)"
	KeyVariety          = "Variety (distinct)"
	KeyQ1               = "Q1"
	KeyQ3               = "Q3"
	KeyIQR              = "IQR"
	KeyOutliers         = "Outliers (IQR)"
	KeyMinOutlier       = "Min Outlier"
	KeyMaxOutlier       = "Max Outlier"
	KeyPercentOutliers  = "% Outliers"
	KeyLowVariance      = "Low Variance Flag"
	KeyZeros            = "Zeros"
	KeyPositives        = "Positives"
	KeyNegatives        = "Negatives"
	KeyCV               = "CV %"
	KeyIntegerValues    = "Integer Values"
	KeyDecimalValues    = "Decimal Values"
	KeyPercentInteger   = "% Integer Values"
	KeySkewness         = "Skewness"
	KeyKurtosis         = "Kurtosis"
	KeyNormalityP       = "Normality (p-value)"
	KeyLikelyNormal     = "Normality (Likely Normal)"
	KeyPctl1            = "1st Pctl"
	KeyPctl5            = "5th Pctl"
	KeyPctl95           = "95th Pctl"
	KeyPctl99           = "99th Pctl"
	KeyOptimalBins      = "Optimal Bins (Freedman-Diaconis)"

	KeyEmptyStrings       = "Empty Strings"
	KeyPercentEmpty       = "% Empty"
	KeyLeadTrailSpaces    = "Leading/Trailing Spaces"
	KeyInternalSpaces     = "Internal Multiple Spaces"
	KeyMinLength          = "Min Length"
	KeyMaxLength          = "Max Length"
	KeyAvgLength          = "Avg Length"
	KeyTopValues          = "Unique Values (Top)"
	KeyOccurringOnce      = "Values Occurring Once"
	KeyTopWords           = "Top Words"
	KeyPatternMatches     = "Pattern Matches"
	KeyPercentUppercase   = "% Uppercase"
	KeyPercentLowercase   = "% Lowercase"
	KeyPercentTitlecase   = "% Titlecase"
	KeyPercentMixedCase   = "% Mixed Case"
	KeyNonPrintableChars  = "Non-Printable Chars Count"

	KeyMinDate         = "Min Date"
	KeyMaxDate         = "Max Date"
	KeyCommonYears     = "Common Years"
	KeyCommonMonths    = "Common Months"
	KeyCommonDays      = "Common Days"
	KeyCommonHours     = "Common Hours (Top 3)"
	KeyPercentMidnight = "% Midnight Time"
	KeyPercentNoon     = "% Noon Time"
	KeyPercentWeekend  = "% Weekend Dates"
	KeyPercentWeekday  = "% Weekday Dates"
	KeyDatesBefore     = "Dates Before Today"
	KeyDatesAfter      = "Dates After Today"
)

// Canonical row order of the tabular projection, grouped by field-kind
// relevance. Unknown extra keys are appended alphabetically after
// these.
var (
	StatKeysNumeric = []string{
		KeyNonNullCount, KeyNullCount, KeyPercentNull, KeyConversionErrors,
		KeyMin, KeyMax, KeyRange, KeySum, KeyMean, KeyMedian, KeyStdevPop, KeyModes,
		KeyVariety, KeyQ1, KeyQ3, KeyIQR,
		KeyOutliers, KeyMinOutlier, KeyMaxOutlier, KeyPercentOutliers,
		KeyLowVariance,
		KeyZeros, KeyPositives, KeyNegatives, KeyCV,
		KeyIntegerValues, KeyDecimalValues, KeyPercentInteger,
		KeySkewness, KeyKurtosis, KeyNormalityP, KeyLikelyNormal,
		KeyPctl1, KeyPctl5, KeyPctl95, KeyPctl99,
		KeyOptimalBins,
	}

	StatKeysText = []string{
		KeyNonNullCount, KeyNullCount, KeyPercentNull, KeyEmptyStrings, KeyPercentEmpty,
		KeyLeadTrailSpaces, KeyInternalSpaces,
		KeyVariety, KeyMinLength, KeyMaxLength, KeyAvgLength,
		KeyTopValues, KeyOccurringOnce,
		KeyTopWords, KeyPatternMatches,
		KeyPercentUppercase, KeyPercentLowercase, KeyPercentTitlecase, KeyPercentMixedCase,
		KeyNonPrintableChars,
	}

	StatKeysTemporal = []string{
		KeyNonNullCount, KeyNullCount, KeyPercentNull, KeyMinDate, KeyMaxDate,
		KeyTopValues,
		KeyCommonYears, KeyCommonMonths, KeyCommonDays,
		KeyCommonHours, KeyPercentMidnight, KeyPercentNoon,
		KeyPercentWeekend, KeyPercentWeekday,
		KeyDatesBefore, KeyDatesAfter,
	}

	StatKeysOther = []string{KeyNonNullCount, KeyNullCount, KeyPercentNull, KeyStatus, KeyMismatchHint}
	StatKeysError = []string{KeyError, KeyStatus}
)
