package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"accheck/internal/dataset"
	"accheck/internal/dedup"
	"accheck/internal/exporter"
	"accheck/pkg/contracts/domain"
)

// CheckService orchestrates a duplicate check: load the input, select
// the duplicate rows, and write the report.
type CheckService struct {
	loader   *dataset.Loader
	selector *dedup.Selector
	exporter *exporter.ReportExporter
	logger   *slog.Logger
}

// NewCheckService creates a check service with injected dependencies
func NewCheckService(loader *dataset.Loader, selector *dedup.Selector, exp *exporter.ReportExporter, logger *slog.Logger) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		loader:   loader,
		selector: selector,
		exporter: exp,
		logger:   logger,
	}
}

// CheckRequest describes a file-based duplicate check
type CheckRequest struct {
	InputPath  string
	OutputPath string
	Field      string
	BOM        bool
}

// CheckSummary is the result surfaced to callers after a completed
// check.
type CheckSummary struct {
	InputPath      string        `json:"input_path"`
	OutputPath     string        `json:"output_path"`
	Field          string        `json:"field"`
	TotalProcessed int           `json:"total_processed"`
	ImpactedCount  int           `json:"impacted_count"`
	DuplicateKeys  int           `json:"duplicate_keys"`
	Elapsed        time.Duration `json:"elapsed"`
}

// CheckFile runs the full check for a file on disk and writes the
// duplicate report to req.OutputPath.
func (s *CheckService) CheckFile(ctx context.Context, req CheckRequest) (*CheckSummary, error) {
	if req.InputPath == "" {
		return nil, ErrNoInputPath
	}
	if req.Field == "" {
		return nil, ErrNoField
	}
	if req.OutputPath == "" {
		return nil, ErrNoOutputPath
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "starting duplicate check",
		slog.String("input", req.InputPath),
		slog.String("output", req.OutputPath),
		slog.String("field", req.Field))

	ds, err := s.loader.Load(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	report, err := s.selector.Select(ctx, ds, req.Field)
	if err != nil {
		return nil, err
	}

	if err := s.exporter.ExportReport(ctx, req.OutputPath, report, req.BOM); err != nil {
		return nil, err
	}

	summary := &CheckSummary{
		InputPath:      req.InputPath,
		OutputPath:     req.OutputPath,
		Field:          req.Field,
		TotalProcessed: report.TotalProcessed,
		ImpactedCount:  report.ImpactedCount,
		DuplicateKeys:  len(report.DuplicateKeys),
		Elapsed:        time.Since(start),
	}

	s.logger.InfoContext(ctx, "duplicate check complete",
		slog.Int("total_processed", summary.TotalProcessed),
		slog.Int("impacted_count", summary.ImpactedCount),
		slog.Duration("elapsed", summary.Elapsed))

	return summary, nil
}

// CheckReader runs the check against streamed content, returning the
// report without writing any file. Used by the HTTP API for uploads.
func (s *CheckService) CheckReader(ctx context.Context, r io.Reader, format dataset.Format, field string) (*domain.DuplicateReport, error) {
	if field == "" {
		return nil, ErrNoField
	}

	var ds *domain.Dataset
	var err error
	switch format {
	case dataset.FormatXLSX:
		ds, err = s.loader.LoadXLSX(ctx, r)
	default:
		ds, err = s.loader.LoadCSV(ctx, r)
	}
	if err != nil {
		return nil, err
	}

	return s.selector.Select(ctx, ds, field)
}

// WriteReportCSV writes a previously computed report as CSV to dst
func (s *CheckService) WriteReportCSV(dst io.Writer, report *domain.DuplicateReport, bom bool) error {
	return s.exporter.WriteReportTo(dst, report, bom)
}
