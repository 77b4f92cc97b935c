// Package app assembles the application: configuration, logging,
// services, middleware chain, routes, and the HTTP server lifecycle
// with graceful shutdown.
package app
