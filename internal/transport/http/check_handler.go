package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"accheck/internal/dataset"
	apierrors "accheck/internal/errors"
	"accheck/internal/middleware"
	"accheck/internal/services"
	v1 "accheck/pkg/contracts/api/v1"
)

// CheckHandler handles duplicate check HTTP requests with RFC 7807
// compliance.
type CheckHandler struct {
	service        *services.CheckService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	metrics        *middleware.Metrics
	validate       *validator.Validate
	maxUploadBytes int64
	outputBOM      bool
}

// NewCheckHandler creates a new check handler
func NewCheckHandler(service *services.CheckService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, metrics *middleware.Metrics, maxUploadBytes int64, outputBOM bool) *CheckHandler {
	return &CheckHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "check_handler")),
		errorHandler:   errorHandler,
		metrics:        metrics,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		outputBOM:      outputBOM,
	}
}

// Routes returns the duplicate check routes
func (h *CheckHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Check)
	return r
}

// Check accepts a multipart upload with a "file" part and a "field"
// form value, runs the duplicate check, and responds with JSON or a
// CSV download depending on the requested format.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.fail(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := v1.CheckRequest{
		Field:  r.FormValue("field"),
		Format: r.FormValue("format"),
	}
	if err := h.validate.Struct(&req); err != nil {
		h.fail(w, r, apierrors.ErrValidation("field", validationDetail(err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, apierrors.ErrValidation("file", "A file upload is required"))
		return
	}
	defer file.Close()

	format, err := dataset.DetectFormat(header.Filename)
	if err != nil {
		h.fail(w, r, apierrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST",
			"Unsupported file type, expected .csv or .xlsx", header.Filename))
		return
	}

	h.logger.InfoContext(ctx, "processing upload",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("field", req.Field))

	report, err := h.service.CheckReader(ctx, file, format, req.Field)
	if err != nil {
		h.fail(w, r, mapDatasetError(err))
		return
	}

	h.metrics.RecordCheck("success", report.TotalProcessed, report.ImpactedCount)

	if req.Format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "duplicates_"+header.Filename))
		if err := h.service.WriteReportCSV(w, report, h.outputBOM); err != nil {
			h.logger.ErrorContext(ctx, "failed to stream csv response",
				slog.String("error", err.Error()))
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, v1.CheckResponse{
		Status: "completed",
		Data:   report,
	})
}

// fail records a failed check and writes the error response
func (h *CheckHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.ChecksTotal.WithLabelValues("error").Inc()
	h.errorHandler.HandleError(w, r, err)
}

// mapDatasetError translates pipeline errors into API errors
func mapDatasetError(err error) error {
	switch {
	case errors.Is(err, dataset.ErrFieldNotFound):
		return apierrors.NewWithDetails(http.StatusUnprocessableEntity,
			"FIELD_NOT_FOUND", "Requested field not present in header", err.Error())
	case errors.Is(err, dataset.ErrMissingHeader):
		return apierrors.ErrMissingHeader
	case errors.Is(err, dataset.ErrMalformedInput):
		return apierrors.NewWithDetails(http.StatusBadRequest,
			"MALFORMED_INPUT", "Input file could not be parsed", err.Error())
	case errors.Is(err, dataset.ErrFileNotFound):
		return apierrors.ErrNotFound
	case errors.Is(err, services.ErrNoField):
		return apierrors.ErrValidation("field", "Target field is required")
	default:
		return err
	}
}

// validationDetail produces a readable message from validator errors
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		switch first.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", first.Field())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", first.Field(), first.Param())
		case "max":
			return fmt.Sprintf("%s is too long", first.Field())
		}
		return fmt.Sprintf("%s is invalid", first.Field())
	}
	return err.Error()
}
