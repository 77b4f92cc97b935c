// Package config provides configuration loading for accheck.
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. An optional config.yaml next to the binary
//  3. Environment variables with the ACCHECK_ prefix
//
// The package also centralizes filesystem path resolution. All
// relative paths resolve against the executable's directory via
// GetPaths, so the CLI and the web server find the same data, reports
// and logs directories no matter where they are started from.
package config
