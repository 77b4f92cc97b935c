// Package exporter provides CSV export functionality for duplicate
// reports.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// ReportExporter: Writes duplicate reports to files or arbitrary
// writers. The header row is always written, so a report with no
// duplicates still produces a well-formed CSV file.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	reports := exporter.NewReportExporter(writer, logger)
//	err := reports.ExportReport(ctx, "duplicates.csv", report, true)
package exporter
