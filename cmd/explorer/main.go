// Command explorer gives a first look at a directory of survey data files.
// For every .csv/.xlsx file it prints the first rows, the normalized column
// names, and inferred column types, so a new dataset can be assessed before
// wiring it into the analysis pipeline.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"surveycli/internal/config"
	"surveycli/internal/files"
	"surveycli/internal/infrastructure"
	"surveycli/internal/survey"
)

// previewRows is how many data rows each file preview shows.
const previewRows = 5

func main() {
	dir := flag.String("dir", "", "directory containing survey data files (defaults to the data directory)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("explorer.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *dir == "" {
		*dir = paths.DataDir
	}

	logger.Info("exploring data directory", slog.String("dir", *dir))

	if err := explore(logger, *dir); err != nil {
		logger.Error("exploration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// explore previews every file in the directory in sorted name order.
func explore(logger *slog.Logger, dir string) error {
	discovery := files.NewDiscovery(dir)
	found, err := discovery.ListFiles(".")
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Printf("no files found in %s\n", dir)
		return nil
	}

	for _, file := range found {
		fmt.Printf("\n=========================\n")
		fmt.Printf("Analyzing file: %s\n", file.Name)
		fmt.Printf("=========================\n")

		switch strings.ToLower(filepath.Ext(file.Name)) {
		case ".csv", ".xlsx", ".xls":
			if err := previewFile(file.Path); err != nil {
				logger.Warn("could not read file",
					slog.String("file", file.Name),
					slog.String("error", err.Error()))
				fmt.Printf("could not read or process file: %v\n", err)
			}
		default:
			fmt.Printf("skipping unsupported file type: %s\n", file.Name)
		}
	}

	return nil
}

// previewFile prints the head, column names, and inferred column types.
func previewFile(path string) error {
	rows, err := survey.ReadRows(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("file is empty")
		return nil
	}

	header := rows[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = survey.NormalizeHeader(h)
	}
	data := rows[1:]

	fmt.Printf("\nFirst %d rows:\n", previewRows)
	for i, row := range data {
		if i >= previewRows {
			break
		}
		fmt.Printf("  %s\n", strings.Join(row, " | "))
	}

	fmt.Println("\nColumn names:")
	fmt.Printf("  %s\n", strings.Join(columns, ", "))

	fmt.Println("\nColumn types:")
	for i, col := range columns {
		fmt.Printf("  %-20s %s\n", col, inferColumnType(data, i))
	}

	fmt.Printf("\nRows: %d\n", len(data))
	return nil
}

// inferColumnType scans one column and reports integer, float, text, or
// empty. A single non-numeric value makes the whole column text, matching
// how dataframe readers infer dtypes.
func inferColumnType(rows [][]string, col int) string {
	hasValue := false
	isInt := true
	isFloat := true

	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[col])
		if value == "" {
			continue
		}
		hasValue = true

		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			isFloat = false
		}
	}

	switch {
	case !hasValue:
		return "empty"
	case isInt:
		return "integer"
	case isFloat:
		return "float"
	default:
		return "text"
	}
}
