package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accheck/pkg/contracts/domain"
)

func sampleReport() *domain.DuplicateReport {
	return &domain.DuplicateReport{
		Field:  "accession",
		Header: []string{"id", "accession", "name"},
		Rows: [][]string{
			{"1", "A1", "first"},
			{"3", "A1", "third"},
		},
		TotalProcessed: 3,
		ImpactedCount:  2,
		DuplicateKeys:  []string{"A1"},
	}
}

func TestExportReport(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "duplicates.csv")

	require.NoError(t, exp.ExportReport(context.Background(), path, sampleReport(), false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,accession,name\n1,A1,first\n3,A1,third\n", string(data))
}

func TestExportReportEmptyStillWritesHeader(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "duplicates.csv")

	report := &domain.DuplicateReport{
		Field:          "accession",
		Header:         []string{"id", "accession", "name"},
		TotalProcessed: 5,
	}
	require.NoError(t, exp.ExportReport(context.Background(), path, report, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,accession,name\n", string(data))
}

func TestExportReportWithBOM(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "duplicates.csv")

	require.NoError(t, exp.ExportReport(context.Background(), path, sampleReport(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestExportReportNil(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)

	err := exp.ExportReport(context.Background(), "out.csv", nil, false)
	require.Error(t, err)
}

func TestWriteReportTo(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)
	var buf bytes.Buffer

	require.NoError(t, exp.WriteReportTo(&buf, sampleReport(), false))
	assert.Equal(t, "id,accession,name\n1,A1,first\n3,A1,third\n", buf.String())
}

func TestStreamReport(t *testing.T) {
	exp := NewReportExporter(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "stream.csv")

	require.NoError(t, exp.StreamReport(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFid,accession,name\n1,A1,first\n3,A1,third\n", string(data))
}
