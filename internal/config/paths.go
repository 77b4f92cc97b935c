package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Paths holds all resolved filesystem paths used by the application.
// Every relative configured path resolves against the executable's
// directory so the binaries behave the same regardless of the working
// directory they are launched from.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string
}

var (
	pathsInstance *Paths
	pathsOnce     sync.Once
	pathsErr      error
)

// GetPaths returns the process-wide resolved paths, computing them on
// first use.
func GetPaths() (*Paths, error) {
	pathsOnce.Do(func() {
		pathsInstance, pathsErr = resolvePaths()
	})
	return pathsInstance, pathsErr
}

func resolvePaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	exeDir := filepath.Dir(exe)

	// Tests and `go run` execute from throwaway build dirs; fall back
	// to the working directory there.
	if strings.Contains(exeDir, "go-build") || strings.HasPrefix(exeDir, os.TempDir()) {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			exeDir = wd
		}
	}

	p := &Paths{
		ExecutableDir: exeDir,
		DataDir:       filepath.Join(exeDir, "data"),
		ReportsDir:    filepath.Join(exeDir, "data", "reports"),
		LogsDir:       filepath.Join(exeDir, "logs"),
	}
	return p, nil
}

// PathsFromConfig resolves the configured directories, interpreting
// relative entries against the executable directory.
func PathsFromConfig(cfg PathsConfig) (*Paths, error) {
	base, err := GetPaths()
	if err != nil {
		return nil, err
	}

	p := &Paths{
		ExecutableDir: base.ExecutableDir,
		DataDir:       base.DataDir,
		ReportsDir:    base.ReportsDir,
		LogsDir:       base.LogsDir,
	}
	if cfg.DataDir != "" {
		p.DataDir = resolveAgainst(base.ExecutableDir, cfg.DataDir)
	}
	if cfg.ReportsDir != "" {
		p.ReportsDir = resolveAgainst(base.ExecutableDir, cfg.ReportsDir)
	}
	if cfg.LogsDir != "" {
		p.LogsDir = resolveAgainst(base.ExecutableDir, cfg.LogsDir)
	}
	return p, nil
}

func resolveAgainst(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates every directory the application writes to.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path of a file inside the reports
// directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path of a file inside the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs every resolved path at startup for debugging.
func (p *Paths) LogPathResolution() {
	slog.Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
