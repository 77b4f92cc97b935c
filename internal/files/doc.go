// Package files discovers input and report files on disk. The HTTP
// API uses it to list previously exported duplicate reports.
package files
