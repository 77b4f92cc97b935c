package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"accheck/pkg/contracts/domain"
)

// Format identifies a supported input file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its input format by extension
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Loader reads tabular input files into datasets
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a dataset, dispatching on the file
// extension.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	l.logger.DebugContext(ctx, "loading dataset",
		slog.String("path", path),
		slog.String("format", string(format)))

	switch format {
	case FormatXLSX:
		return l.LoadXLSX(ctx, file)
	default:
		return l.LoadCSV(ctx, file)
	}
}

// LoadCSV reads CSV content into a dataset. The first record is the
// header; all subsequent records are data rows. Records may have
// varying field counts.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	// Excel prepends a UTF-8 BOM to CSV exports
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		rows = append(rows, record)
	}

	l.logger.DebugContext(ctx, "csv loaded",
		slog.Int("columns", len(header)),
		slog.Int("rows", len(rows)))

	return domain.NewDataset(header, rows), nil
}

// LoadXLSX reads the first sheet of an xlsx workbook into a dataset.
// The first row is the header.
func (l *Loader) LoadXLSX(ctx context.Context, r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	l.logger.DebugContext(ctx, "xlsx loaded",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(rows)-1))

	return domain.NewDataset(rows[0], rows[1:]), nil
}

// ValidateField resolves the target field to its column index.
// Returns ErrMissingHeader for an empty header and ErrFieldNotFound
// when the field is not a column name.
func ValidateField(ds *domain.Dataset, field string) (int, error) {
	if len(ds.Header) == 0 {
		return 0, ErrMissingHeader
	}
	idx, ok := ds.ColumnIndex(field)
	if !ok {
		return 0, fmt.Errorf("%w: %q (columns: %s)",
			ErrFieldNotFound, field, strings.Join(ds.Header, ", "))
	}
	return idx, nil
}

// IsNotFound reports whether err indicates a missing input file
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}
