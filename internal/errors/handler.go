package errors

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrorHandler provides centralized error handling for HTTP responses
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       logger,
		includeStack: includeStack,
	}
}

// HandleError converts an error into an RFC 7807 problem response and
// writes it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	problem := h.ErrorToProblem(r.Context(), err)
	problem.Instance = r.URL.Path

	logLevel := slog.LevelWarn
	if problem.Status >= 500 {
		logLevel = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), logLevel, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", problem.Status),
		slog.String("error", err.Error()),
	)

	if renderErr := problem.Render(w, r); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
	}
}

// ErrorToProblem converts any error to RFC 7807 problem details
func (h *ErrorHandler) ErrorToProblem(ctx context.Context, err error) *ProblemDetails {
	var problem *ProblemDetails
	if stderrors.As(err, &problem) {
		return problem
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErrorToProblem(apiErr)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout,
			"Request Timeout", "The request took too long to process")
	}
	if stderrors.Is(err, context.Canceled) {
		return NewProblemDetails(499, TypeTimeout,
			"Client Closed Request", "The client canceled the request")
	}

	detail := "An unexpected error occurred"
	if h.includeStack {
		detail = err.Error()
	}
	return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", detail)
}

// apiErrorToProblem maps an APIError to a problem with a stable type URI
func apiErrorToProblem(apiErr *APIError) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST", "MISSING_PARAMETER":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "FIELD_NOT_FOUND":
		problemType = TypeFieldNotFound
	case "MISSING_HEADER":
		problemType = TypeMissingHeader
	case "MALFORMED_INPUT":
		problemType = TypeMalformedInput
	case "PAYLOAD_TOO_LARGE":
		problemType = TypePayloadTooLarge
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	}

	problem := NewProblemDetails(apiErr.StatusCode, problemType,
		http.StatusText(apiErr.StatusCode), apiErr.Message)
	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// HandlePanic recovers from panics and writes a 500 problem response
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(http.StatusInternalServerError, TypeInternal,
		"Internal Server Error", "An unexpected error occurred").
		WithInstance(r.URL.Path)
	problem.Render(w, r)
}

// NotFound writes a 404 problem response for unknown routes
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound,
		"Not Found", "The requested resource was not found").
		WithInstance(r.URL.Path)
	problem.Render(w, r)
}

// MethodNotAllowed writes a 405 problem response
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(http.StatusMethodNotAllowed, TypeValidation,
		"Method Not Allowed", "The HTTP method is not allowed for this resource").
		WithInstance(r.URL.Path)
	problem.Render(w, r)
}
