// Package services contains the business logic layer.
//
// CheckService is the orchestrator: it loads an input file into a
// dataset, selects the rows whose comparison key occurs more than
// once, and writes the duplicate report. The CLI and the HTTP
// transport both call into it; neither reimplements the pipeline.
//
// HealthService reports process health and build information for the
// HTTP API.
package services
