package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accheck/internal/dataset"
	"accheck/internal/dedup"
	apierrors "accheck/internal/errors"
	"accheck/internal/exporter"
	"accheck/internal/middleware"
	"accheck/internal/services"
)

func newCheckHandler(t *testing.T) *CheckHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewCheckService(
		dataset.NewLoader(logger),
		dedup.NewSelector(logger),
		exporter.NewReportExporter(exporter.NewCSVWriter(nil), logger),
		logger,
	)
	metrics := middleware.NewMetrics(prometheus.NewRegistry())
	errorHandler := apierrors.NewErrorHandler(logger, false)
	return NewCheckHandler(svc, logger, errorHandler, metrics, 1<<20, false)
}

func multipartRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/duplicates", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCheckJSONResponse(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t,
		"records.csv",
		"id,accession,name\n1,A1,first\n2,B2,second\n3,A1,third\n",
		map[string]string{"field": "accession"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Field          string     `json:"field"`
			Header         []string   `json:"header"`
			Rows           [][]string `json:"rows"`
			TotalProcessed int        `json:"total_processed"`
			ImpactedCount  int        `json:"impacted_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "accession", resp.Data.Field)
	assert.Equal(t, 3, resp.Data.TotalProcessed)
	assert.Equal(t, 2, resp.Data.ImpactedCount)
	assert.Equal(t, [][]string{{"1", "A1", "first"}, {"3", "A1", "third"}}, resp.Data.Rows)
}

func TestCheckCSVDownload(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t,
		"records.csv",
		"id,accession\n1,A1\n2,A1\n",
		map[string]string{"field": "accession", "format": "csv"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "duplicates_records.csv")
	assert.Equal(t, "id,accession\n1,A1\n2,A1\n", rec.Body.String())
}

func TestCheckMissingField(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.csv", "id\n1\n", nil)
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeValidation)
}

func TestCheckMissingFile(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "", "", map[string]string{"field": "id"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckFieldNotFound(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.csv", "id,name\n1,alpha\n",
		map[string]string{"field": "accession"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeFieldNotFound)
}

func TestCheckEmptyUpload(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.csv", "", map[string]string{"field": "id"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeMissingHeader)
}

func TestCheckUnsupportedExtension(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.txt", "id\n1\n", map[string]string{"field": "id"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckInvalidFormatValue(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.csv", "id\n1\n",
		map[string]string{"field": "id", "format": "xml"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckNoDuplicatesCSVStillHasHeader(t *testing.T) {
	handler := newCheckHandler(t)

	req := multipartRequest(t, "records.csv", "id,accession\n1,A1\n2,B2\n",
		map[string]string{"field": "accession", "format": "csv"})
	rec := httptest.NewRecorder()
	handler.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id,accession\n", rec.Body.String())
}
