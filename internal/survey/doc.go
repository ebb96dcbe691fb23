// Package survey provides the core survey-data processing pipeline: loading
// respondent-level data from spreadsheets, cleaning it, and computing Net
// Promoter Score (NPS) and demographic summaries.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads survey Excel/CSV files into immutable Respondent records
// 2. Aggregator: groups respondents by demographics and computes NPS per group
// 3. Demographic breakdowns: per-attribute value counts with percentage shares
//
// # Usage
//
// Basic pipeline example:
//
//	loader := survey.NewLoader(logger)
//	ds, err := loader.LoadFile("data/baseZona2024.xlsx", mapping)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	agg := survey.NewAggregator(logger)
//	results, err := agg.Aggregate(ctx, ds.Respondents, []string{"region"})
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Spreadsheet → Loader → Respondents → Aggregator → GroupResults → Reports
//
// # Error Handling
//
// Fatal conditions surface as typed errors from internal/errors: an
// unreadable source or missing required columns is a DATA_LOAD error, and
// aggregating zero respondents is an EMPTY_DATASET error. Malformed
// individual score values are never fatal; the respondent is kept with a
// nil score and excluded from NPS math.
package survey
