// Command nps-report runs the survey analysis pipeline: load a survey
// spreadsheet, clean it, summarize demographics, compute NPS per group, and
// write CSV/JSON reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"surveycli/internal/config"
	"surveycli/internal/exporter"
	"surveycli/internal/files"
	"surveycli/internal/infrastructure"
	"surveycli/internal/survey"
)

func main() {
	in := flag.String("in", "", "source survey file (.xlsx or .csv); defaults to the newest data file in the data directory")
	groupBy := flag.String("group-by", "", "comma-separated demographic attributes to group by (defaults to config)")
	outCSV := flag.String("out-csv", "", "output path for the NPS report CSV (defaults to data/reports/nps_by_group.csv)")
	outJSON := flag.String("out-json", "", "output path for the NPS report JSON (defaults to data/reports/nps_by_group.json)")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("nps-report.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// Every run gets its own ID so log lines stay attributable.
	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	if *outCSV == "" {
		*outCSV = paths.NPSReportCSV
	}
	if *outJSON == "" {
		*outJSON = paths.NPSReportJSON
	}

	source, err := resolveSource(*in, cfg, paths)
	if err != nil {
		logger.ErrorContext(ctx, "no source dataset found", slog.String("error", err.Error()))
		os.Exit(1)
	}

	attrs := parseGroupBy(*groupBy, cfg)

	logger.InfoContext(ctx, "starting NPS analysis",
		slog.String("source", source),
		slog.Any("group_by", attrs))

	if err := run(ctx, logger, cfg, source, attrs, *outCSV, *outJSON, paths.DemographicsCSV); err != nil {
		logger.ErrorContext(ctx, "analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "analysis complete",
		slog.String("nps_csv", *outCSV),
		slog.String("nps_json", *outJSON))
}

// run executes the full pipeline against one source file.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, source string, groupBy []string, outCSV, outJSON, demographicsCSV string) error {
	mapping := survey.ColumnMapping{
		ID:           cfg.Survey.IDColumn,
		Score:        cfg.Survey.ScoreColumn,
		Demographics: cfg.Survey.DemographicColumns,
	}

	loader := survey.NewLoader(logger)
	ds, err := loader.LoadFile(source, mapping)
	if err != nil {
		return err
	}

	agg := survey.NewAggregator(logger)

	// Demographic overview of the whole population, the way the source
	// analysis reported value shares per attribute.
	attrs := make([]string, 0, len(cfg.Survey.DemographicColumns))
	for attr := range cfg.Survey.DemographicColumns {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	writer := exporter.NewReportWriter(logger)

	if len(attrs) > 0 {
		breakdowns, err := agg.Breakdowns(ctx, ds.Respondents, attrs)
		if err != nil {
			return err
		}
		if err := writer.WriteDemographicsCSV(ctx, demographicsCSV, breakdowns); err != nil {
			return err
		}
	}

	logOverallNPS(ctx, logger, agg, ds)

	results, err := agg.Aggregate(ctx, ds.Respondents, groupBy)
	if err != nil {
		return err
	}

	if err := writer.WriteNPSCSV(ctx, outCSV, results); err != nil {
		return err
	}
	if err := writer.WriteNPSJSON(ctx, outJSON, results); err != nil {
		return err
	}

	fmt.Print(exporter.FormatNPSTable(results))
	return nil
}

// logOverallNPS logs the ungrouped NPS with its promoter/passive/detractor
// shares, the headline number of the whole run.
func logOverallNPS(ctx context.Context, logger *slog.Logger, agg *survey.Aggregator, ds *survey.Dataset) {
	overall, err := agg.Aggregate(ctx, ds.Respondents, nil)
	if err != nil || len(overall) == 0 {
		return
	}

	r := overall[0]
	if r.NPS == nil {
		logger.WarnContext(ctx, "no valid recommendation scores found, overall NPS undefined",
			slog.Int("respondents", r.Respondents))
		return
	}

	valid := float64(r.ValidResponses)
	logger.InfoContext(ctx, "overall NPS",
		slog.Float64("nps", *r.NPS),
		slog.Int("valid_respondents", r.ValidResponses),
		slog.Int("promoters", r.Promoters),
		slog.Float64("promoter_pct", float64(r.Promoters)/valid*100),
		slog.Int("passives", r.Passives),
		slog.Float64("passive_pct", float64(r.Passives)/valid*100),
		slog.Int("detractors", r.Detractors),
		slog.Float64("detractor_pct", float64(r.Detractors)/valid*100))
}

// resolveSource picks the input file: explicit flag, configured source, or
// the newest data file in the data directory.
func resolveSource(flagValue string, cfg *config.Config, paths *config.Paths) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Survey.SourceFile != "" {
		if !config.FileExists(cfg.Survey.SourceFile) {
			return paths.GetDataPath(cfg.Survey.SourceFile), nil
		}
		return cfg.Survey.SourceFile, nil
	}

	discovery := files.NewDiscovery(paths.DataDir)
	found, err := discovery.FindDataFiles(".")
	if err != nil {
		return "", err
	}

	latest, ok := files.GetLatestFile(found)
	if !ok {
		return "", fmt.Errorf("no .xlsx or .csv files in %s", paths.DataDir)
	}
	return latest.Path, nil
}

// parseGroupBy splits the comma-separated flag value, falling back to the
// configured group-by attributes.
func parseGroupBy(flagValue string, cfg *config.Config) []string {
	if flagValue == "" {
		return cfg.Survey.GroupBy
	}

	var attrs []string
	for _, part := range strings.Split(flagValue, ",") {
		if attr := strings.TrimSpace(part); attr != "" {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}
