// Package errors provides centralized error handling for the HTTP API.
//
// Errors are exposed to clients as RFC 7807 problem details documents
// (application/problem+json). Handlers return *APIError values carrying
// an HTTP status and a stable error code; ErrorHandler converts them to
// ProblemDetails with a type URI, logs them with the request trace ID,
// and renders the response.
//
// Usage:
//
//	if err := svc.Check(ctx, req); err != nil {
//	    h.errorHandler.HandleError(w, r, err)
//	    return
//	}
package errors
