// Package http contains the HTTP transport layer: chi handlers that
// translate requests into service calls and service results into JSON
// or CSV responses. Errors are rendered as RFC 7807 problem details.
package http
