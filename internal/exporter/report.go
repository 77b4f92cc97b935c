package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"accheck/pkg/contracts/domain"
)

// ReportExporter writes duplicate reports as CSV files
type ReportExporter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter backed by the given CSV
// writer.
func NewReportExporter(writer *CSVWriter, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{writer: writer, logger: logger}
}

// ExportReport writes the report to filePath. The header row is always
// written, even when the report contains no duplicate rows, so an
// empty result is still a well-formed CSV file.
func (e *ReportExporter) ExportReport(ctx context.Context, filePath string, report *domain.DuplicateReport, bom bool) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}

	e.logger.InfoContext(ctx, "exporting duplicate report",
		slog.String("file_path", filePath),
		slog.String("field", report.Field),
		slog.Int("impacted_count", report.ImpactedCount))

	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers:   report.Header,
		Records:   report.Rows,
		BOMPrefix: bom,
	})
}

// WriteReportTo writes the report as CSV to dst, used for HTTP
// downloads.
func (e *ReportExporter) WriteReportTo(dst io.Writer, report *domain.DuplicateReport, bom bool) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	return e.writer.WriteTo(dst, WriteOptions{
		Headers:   report.Header,
		Records:   report.Rows,
		BOMPrefix: bom,
	})
}

// StreamReport writes the report through a stream writer, for reports
// too large to hold as a single slice copy.
func (e *ReportExporter) StreamReport(ctx context.Context, filePath string, report *domain.DuplicateReport) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}

	sw, err := e.writer.CreateStreamWriter(filePath, report.Header)
	if err != nil {
		return err
	}

	for _, row := range report.Rows {
		if err := sw.WriteRecord(row); err != nil {
			sw.Close()
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	return sw.Close()
}
