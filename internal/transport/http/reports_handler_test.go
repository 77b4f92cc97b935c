package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "accheck/internal/errors"
	"accheck/internal/files"
)

func TestReportsList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dups.csv"), []byte("id\n"), 0644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewReportsHandler(files.NewDiscovery(dir), dir, logger,
		apierrors.NewErrorHandler(logger, false))

	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Reports []files.FileInfo `json:"reports"`
		Count   int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "dups.csv", body.Reports[0].Name)
}

func TestReportsListEmpty(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewReportsHandler(files.NewDiscovery(dir), filepath.Join(dir, "none"), logger,
		apierrors.NewErrorHandler(logger, false))

	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.Count)
}
