package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fieldprofiler/fieldprofiler/config"
	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/plot"
	"github.com/fieldprofiler/fieldprofiler/profiler"
	"github.com/fieldprofiler/fieldprofiler/report"
	"github.com/fieldprofiler/fieldprofiler/source"
)

var (
	inputPath string
	dbDSN     string
	dbTable   string
	fieldList []string

	topValues     int
	decimalPlaces int
	skipDistShape bool
	skipPctl      bool
	skipIntDec    bool
	skipOutliers  bool
	skipCase      bool
	skipRarity    bool
	skipTime      bool

	outputFormat string
	histogramDir string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile the fields of a file or database table",
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	ds, err := openDataset()
	if err != nil {
		return err
	}
	ds, err = source.WithFields(ds, fieldList)
	if err != nil {
		return err
	}

	opts := models.DefaultOptions()
	opts.NumericDistShape = !skipDistShape
	opts.NumericAdvPercentiles = !skipPctl
	opts.NumericIntDecimal = !skipIntDec
	opts.NumericOutlierDetails = !skipOutliers
	opts.TextCaseAnalysis = !skipCase
	opts.TextRarityNonPrintable = !skipRarity
	opts.TemporalTimeWeekend = !skipTime
	opts.TopValuesLimit = topValues
	opts.DecimalPlaces = decimalPlaces
	opts.KeepNumericSamples = histogramDir != ""

	p := profiler.New()
	if !p.Caps.Normality.Available() {
		log.Warn("normality testing unavailable, distribution shape statistics degrade to N/A")
	}

	progress := func(done, total int64) {
		log.Debugf("scanned %d/%d rows", done, total)
	}
	res, err := p.Analyze(cmd.Context(), ds, opts, progress)
	if err != nil {
		return err
	}
	log.Infow("analysis complete", "run_id", res.RunID, "rows", res.TotalRows, "fields", len(res.FieldOrder))

	switch outputFormat {
	case "pretty":
		fmt.Println(report.Pretty(res, opts.DecimalPlaces))
	case "csv":
		fmt.Print(report.CSV(res, opts.DecimalPlaces))
	case "tsv":
		fmt.Print(report.TSV(res, opts.DecimalPlaces))
	default:
		return fmt.Errorf("unknown format %q (want pretty, csv or tsv)", outputFormat)
	}

	if histogramDir != "" {
		if err := writeHistograms(res); err != nil {
			return err
		}
	}
	return nil
}

func openDataset() (profiler.Dataset, error) {
	if inputPath != "" {
		return source.OpenCSV(inputPath)
	}
	dsn := dbDSN
	if dsn == "" {
		dsn = config.GetConfig().DBDSN
	}
	if dsn != "" && dbTable != "" {
		return source.OpenTable(dsn, dbTable)
	}
	return nil, fmt.Errorf("either --input or --dsn and --table are required")
}

func writeHistograms(res *models.AnalysisResult) error {
	if err := os.MkdirAll(histogramDir, 0o755); err != nil {
		return err
	}
	for field, samples := range res.NumericSamples {
		bins := 0
		if rep, ok := res.Reports[field]; ok {
			if v, ok := rep.Get(profiler.KeyOptimalBins); ok && v.IsNumber() {
				bins = int(v.AsFloat())
			}
		}
		h, err := plot.BuildHistogram(field, samples, bins)
		if err != nil {
			log.Warnw("skipping histogram", "field", field, "reason", err)
			continue
		}
		path := filepath.Join(histogramDir, field+".html")
		if err := h.Render(path); err != nil {
			return fmt.Errorf("rendering histogram for %s: %w", field, err)
		}
		log.Infow("histogram written", "field", field, "path", path)
	}
	return nil
}

func init() {
	profileCmd.Flags().StringVarP(&inputPath, "input", "i", "", "delimited file to profile (.csv, .csv.gz, .csv.lz4, .zip)")
	profileCmd.Flags().StringVar(&dbDSN, "dsn", "", "database DSN (defaults to FIELDPROFILER_DB_DSN)")
	profileCmd.Flags().StringVar(&dbTable, "table", "", "database table to profile")
	profileCmd.Flags().StringSliceVarP(&fieldList, "fields", "f", nil, "profile only these fields")

	profileCmd.Flags().IntVar(&topValues, "top", 5, "number of top values to report")
	profileCmd.Flags().IntVar(&decimalPlaces, "decimals", 2, "decimal places in rendered statistics")
	profileCmd.Flags().BoolVar(&skipDistShape, "skip-dist-shape", false, "skip skewness, kurtosis and normality")
	profileCmd.Flags().BoolVar(&skipPctl, "skip-percentiles", false, "skip 1/5/95/99 percentiles")
	profileCmd.Flags().BoolVar(&skipIntDec, "skip-int-decimal", false, "skip integer/decimal breakdown and bin count")
	profileCmd.Flags().BoolVar(&skipOutliers, "skip-outlier-details", false, "skip outlier bounds and percentage")
	profileCmd.Flags().BoolVar(&skipCase, "skip-case", false, "skip case distribution analysis")
	profileCmd.Flags().BoolVar(&skipRarity, "skip-rarity", false, "skip rarity and non-printable analysis")
	profileCmd.Flags().BoolVar(&skipTime, "skip-time-weekend", false, "skip time-of-day and weekend analysis")

	profileCmd.Flags().StringVar(&outputFormat, "format", "pretty", "output format: pretty, csv or tsv")
	profileCmd.Flags().StringVar(&histogramDir, "histogram-dir", "", "write per-field histogram HTML files here")

	rootCmd.AddCommand(profileCmd)
}
