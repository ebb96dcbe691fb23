package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"surveycli/internal/errors"
	"surveycli/internal/survey"
)

// ReportWriter persists NPS results and demographic breakdowns as CSV and
// JSON report files.
type ReportWriter struct {
	logger *slog.Logger
	csv    *CSVWriter
}

// NewReportWriter creates a new report writer.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		logger: logger,
		csv:    NewCSVWriter(logger),
	}
}

// npsValue renders a possibly-undefined NPS for CSV output. An undefined
// score stays blank rather than printing 0 — zero is a real NPS.
func npsValue(nps *float64) string {
	if nps == nil {
		return ""
	}
	return strconv.FormatFloat(*nps, 'f', 1, 64)
}

// WriteNPSCSV writes the per-group NPS results to a CSV file.
func (w *ReportWriter) WriteNPSCSV(ctx context.Context, path string, results []survey.GroupResult) error {
	w.logger.InfoContext(ctx, "writing NPS report CSV",
		slog.String("path", path),
		slog.Int("group_count", len(results)))

	headers := []string{"Group", "Respondents", "ValidResponses", "Promoters", "Passives", "Detractors", "NPS"}

	records := make([][]string, 0, len(results))
	for _, r := range results {
		records = append(records, []string{
			r.Key,
			strconv.Itoa(r.Respondents),
			strconv.Itoa(r.ValidResponses),
			strconv.Itoa(r.Promoters),
			strconv.Itoa(r.Passives),
			strconv.Itoa(r.Detractors),
			npsValue(r.NPS),
		})
	}

	if err := w.csv.WriteSimpleCSV(path, headers, records); err != nil {
		return errors.NewStorageError("failed to write NPS report CSV", err)
	}

	return nil
}

// WriteNPSJSON writes the per-group NPS results to a JSON file with metadata.
func (w *ReportWriter) WriteNPSJSON(ctx context.Context, path string, results []survey.GroupResult) error {
	w.logger.InfoContext(ctx, "writing NPS report JSON",
		slog.String("path", path),
		slog.Int("group_count", len(results)))

	payload := map[string]interface{}{
		"groups":       results,
		"count":        len(results),
		"generated_at": time.Now().Format(time.RFC3339),
		"format":       "nps_report_v1",
	}

	return w.writeJSON(path, payload)
}

// WriteDemographicsCSV writes demographic breakdowns to a single CSV file,
// one row per attribute value.
func (w *ReportWriter) WriteDemographicsCSV(ctx context.Context, path string, breakdowns []survey.Breakdown) error {
	w.logger.InfoContext(ctx, "writing demographics CSV",
		slog.String("path", path),
		slog.Int("attribute_count", len(breakdowns)))

	headers := []string{"Attribute", "Value", "Count", "Percent"}

	var records [][]string
	for _, b := range breakdowns {
		for _, v := range b.Values {
			records = append(records, []string{
				b.Attribute,
				v.Value,
				strconv.Itoa(v.Count),
				strconv.FormatFloat(v.Percent, 'f', 2, 64),
			})
		}
	}

	if err := w.csv.WriteSimpleCSV(path, headers, records); err != nil {
		return errors.NewStorageError("failed to write demographics CSV", err)
	}

	return nil
}

// writeJSON encodes the payload into a freshly created file.
func (w *ReportWriter) writeJSON(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create JSON report file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		return errors.NewStorageError("failed to encode JSON report", err)
	}

	return nil
}

// FormatNPSTable renders the NPS results as an aligned text table for
// stdout. Group keys longer than the column stay unpadded.
func FormatNPSTable(results []survey.GroupResult) string {
	out := fmt.Sprintf("%-24s %12s %8s %8s %10s %8s\n", "Group", "Respondents", "Valid", "Prom.", "Detract.", "NPS")
	for _, r := range results {
		nps := "n/a"
		if r.NPS != nil {
			nps = strconv.FormatFloat(*r.NPS, 'f', 1, 64)
		}
		out += fmt.Sprintf("%-24s %12d %8d %8d %10d %8s\n",
			r.Key, r.Respondents, r.ValidResponses, r.Promoters, r.Detractors, nps)
	}
	return out
}
