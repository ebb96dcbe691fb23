package survey

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"surveycli/internal/errors"
)

// MinScore and MaxScore bound the recommendation scale. Anything outside is
// treated as missing, not as an error.
const (
	MinScore = 0
	MaxScore = 10
)

// Loader reads survey source files into cleaned, immutable Respondent
// records. It supports .xlsx (first non-empty sheet) and .csv sources.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new survey file loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads the file at path and produces a cleaned Dataset using the
// given column mapping. It returns a DATA_LOAD error when the source is
// unreadable, empty, of an unsupported format, or lacks a required column.
func (l *Loader) LoadFile(path string, mapping ColumnMapping) (*Dataset, error) {
	if mapping.ID == "" || mapping.Score == "" {
		return nil, errors.NewDataLoadError("column mapping must name both the id and score columns", nil)
	}

	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded source rows",
		slog.String("path", path),
		slog.Int("row_count", len(rows)))

	return l.buildDataset(path, rows, mapping)
}

// ReadRows reads the raw cell grid from a supported source file without any
// cleaning. Both the loader and the exploration tool go through here.
func ReadRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return readExcelRows(path)
	case ".csv":
		return readCSVRows(path)
	default:
		return nil, errors.NewDataLoadError(
			fmt.Sprintf("unsupported source format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

// readExcelRows reads all rows from the first sheet that contains data.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to open Excel file", err).WithContext("path", path)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	return nil, errors.NewDataLoadError("no sheet with data found in Excel file", nil).WithContext("path", path)
}

// readCSVRows reads all records from a CSV file.
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to open CSV file", err).WithContext("path", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are cleaned later

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewDataLoadError("failed to parse CSV file", err).WithContext("path", path)
	}

	return rows, nil
}

// buildDataset maps the header row, then cleans each data row into a
// Respondent record.
func (l *Loader) buildDataset(path string, rows [][]string, mapping ColumnMapping) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewDataLoadError("source contains no rows", nil).WithContext("path", path)
	}

	header := rows[0]
	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, raw := range header {
		normalized := NormalizeHeader(raw)
		columns[i] = normalized
		if _, seen := index[normalized]; !seen && normalized != "" {
			index[normalized] = i
		}
	}

	idCol, idOK := index[NormalizeHeader(mapping.ID)]
	scoreCol, scoreOK := index[NormalizeHeader(mapping.Score)]
	if !idOK || !scoreOK {
		var missing []string
		if !idOK {
			missing = append(missing, mapping.ID)
		}
		if !scoreOK {
			missing = append(missing, mapping.Score)
		}
		return nil, errors.NewDataLoadError(
			fmt.Sprintf("required columns not found: %s", strings.Join(missing, ", ")), nil).
			WithContext("path", path).
			WithContext("headers", columns)
	}

	// Resolve demographic columns; absent ones are skipped, not fatal.
	demoCols := make(map[string]int, len(mapping.Demographics))
	for attr, rawHeader := range mapping.Demographics {
		col, ok := index[NormalizeHeader(rawHeader)]
		if !ok {
			l.logger.Warn("demographic column not found, skipping attribute",
				slog.String("attribute", attr),
				slog.String("header", rawHeader))
			continue
		}
		demoCols[attr] = col
	}

	respondents := make([]Respondent, 0, len(rows)-1)
	missingScores := 0

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		score := parseScore(cell(row, scoreCol))
		if score == nil {
			missingScores++
		}

		demographics := make(map[string]string, len(demoCols))
		for attr, col := range demoCols {
			demographics[attr] = NormalizeCategory(cell(row, col))
		}

		respondents = append(respondents, Respondent{
			ID:           strings.TrimSpace(cell(row, idCol)),
			Score:        score,
			Demographics: demographics,
		})
	}

	l.logger.Info("cleaned dataset",
		slog.String("path", path),
		slog.Int("respondents", len(respondents)),
		slog.Int("missing_scores", missingScores))

	return &Dataset{
		Source:      path,
		Columns:     columns,
		Respondents: respondents,
	}, nil
}

// thousandsGrouped matches comma-grouped integers like "1,000".
var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)

// parseScore coerces a raw cell value to an integer score in [MinScore,
// MaxScore]. Non-numeric, fractional, and out-of-range values all come back
// nil: the record stays, the score is missing. A single comma without a
// period is read as a decimal separator; comma-grouped thousands are read
// as the full number, which the range check then rejects.
func parseScore(raw string) *int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	switch {
	case thousandsGrouped.MatchString(value):
		value = strings.ReplaceAll(value, ",", "")
	case strings.Count(value, ",") == 1 && !strings.Contains(value, "."):
		value = strings.Replace(value, ",", ".", 1)
	case strings.Contains(value, ","):
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	if f != math.Trunc(f) {
		return nil
	}

	score := int(f)
	if score < MinScore || score > MaxScore {
		return nil
	}
	return &score
}

// cell returns the value at column i, tolerating short (ragged) rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
