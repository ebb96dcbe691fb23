// Package exporter writes analysis results to CSV and JSON report files.
// CSV output is prefixed with a UTF-8 BOM so Excel opens it correctly;
// JSON output carries count and generation-time metadata.
package exporter
