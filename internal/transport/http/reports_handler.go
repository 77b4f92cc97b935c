package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "accheck/internal/errors"
	"accheck/internal/files"
)

// ReportsHandler lists previously exported duplicate reports
type ReportsHandler struct {
	discovery    *files.Discovery
	reportsDir   string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(discovery *files.Discovery, reportsDir string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportsHandler {
	return &ReportsHandler{
		discovery:    discovery,
		reportsDir:   reportsDir,
		logger:       logger.With(slog.String("component", "reports_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report listing routes
func (h *ReportsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.List)
	return r
}

// List returns the exported reports, newest first
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.discovery.FindReports(h.reportsDir)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("list reports", err))
		return
	}
	if reports == nil {
		reports = []files.FileInfo{}
	}

	render.JSON(w, r, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}
