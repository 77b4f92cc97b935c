package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accheck/internal/dataset"
	"accheck/internal/dedup"
	"accheck/internal/exporter"
	"accheck/internal/services"
)

func newService() *services.CheckService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewCheckService(
		dataset.NewLoader(logger),
		dedup.NewSelector(logger),
		exporter.NewReportExporter(exporter.NewCSVWriter(nil), logger),
		logger,
	)
}

func TestRunCheckWithDuplicates(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	output := filepath.Join(dir, "duplicates.csv")
	require.NoError(t, os.WriteFile(input,
		[]byte("id,accession,name\n1,A1,first\n2,B2,second\n3,A1,third\n"), 0644))

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  input,
		Output: output,
		Field:  "accession",
	})

	assert.Equal(t, 0, code)
	out := buf.String()
	assert.Contains(t, out, "have been saved to")
	assert.Contains(t, out, "--- Summary Report ---")
	assert.Contains(t, out, "Total Records Processed: 3")
	assert.Contains(t, out, "Impacted Records (Duplicates Found): 2")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "id,accession,name\n1,A1,first\n3,A1,third\n", string(data))
}

func TestRunCheckNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	output := filepath.Join(dir, "duplicates.csv")
	require.NoError(t, os.WriteFile(input, []byte("id,accession\n1,A1\n2,B2\n"), 0644))

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  input,
		Output: output,
		Field:  "accession",
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "No duplicate 'accession' values found after trimming spaces.")
	assert.Contains(t, buf.String(), "Impacted Records (Duplicates Found): 0")

	// Output file still written with the header row
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "id,accession\n", string(data))
}

func TestRunCheckFileNotFound(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  filepath.Join(dir, "absent.csv"),
		Output: filepath.Join(dir, "out.csv"),
		Field:  "id",
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "not found.")
}

func TestRunCheckMissingHeader(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(input, nil, 0644))

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  input,
		Output: filepath.Join(dir, "out.csv"),
		Field:  "id",
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "does not appear to have a header row")
	assert.Contains(t, buf.String(), "Total Records Processed: N/A (Header missing)")
}

func TestRunCheckFieldNotFound(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(input, []byte("id,name\n1,alpha\n"), 0644))

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  input,
		Output: filepath.Join(dir, "out.csv"),
		Field:  "accession",
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "Error: Column 'accession' not found in")
	assert.Contains(t, buf.String(), "Impacted Records (Duplicates Found): 0 (Specified field not found)")
}

func TestRunCheckBOM(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("id\n1\n1\n"), 0644))

	var buf bytes.Buffer
	code := runCheck(context.Background(), newService(), &buf, checkArgs{
		Input:  input,
		Output: output,
		Field:  "id",
		BOM:    true,
	})

	require.Equal(t, 0, code)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}
