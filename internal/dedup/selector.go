package dedup

import (
	"context"
	"log/slog"

	"accheck/internal/dataset"
	"accheck/pkg/contracts/domain"
)

// Selector finds rows whose comparison key is shared with at least one
// other row.
type Selector struct {
	logger *slog.Logger
}

// NewSelector creates a selector with the given logger
func NewSelector(logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{logger: logger}
}

// Select returns the duplicate report for the given field. Two passes
// over the rows: the first counts occurrences per comparison key, the
// second collects every row whose key occurs at least twice, in the
// original row order. Returns dataset.ErrFieldNotFound when the field
// is not a header column.
func (s *Selector) Select(ctx context.Context, ds *domain.Dataset, field string) (*domain.DuplicateReport, error) {
	idx, err := dataset.ValidateField(ds, field)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(ds.Rows))
	for _, row := range ds.Rows {
		counts[ComparisonKey(cell(row, idx))]++
	}

	var selected [][]string
	var keys []string
	seen := make(map[string]bool)
	for _, row := range ds.Rows {
		key := ComparisonKey(cell(row, idx))
		if counts[key] < 2 {
			continue
		}
		selected = append(selected, row)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	s.logger.InfoContext(ctx, "duplicate selection complete",
		slog.String("field", field),
		slog.Int("total_processed", len(ds.Rows)),
		slog.Int("impacted_count", len(selected)),
		slog.Int("duplicate_keys", len(keys)))

	return &domain.DuplicateReport{
		Field:          field,
		Header:         ds.Header,
		Rows:           selected,
		TotalProcessed: len(ds.Rows),
		ImpactedCount:  len(selected),
		DuplicateKeys:  keys,
	}, nil
}

// cell returns the value at column idx, or the empty string for rows
// with fewer fields.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
