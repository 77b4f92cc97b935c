package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Discovery provides file discovery operations rooted at a base path
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindInputFiles finds the CSV and xlsx files in dir, sorted by name
func (d *Discovery) FindInputFiles(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		return ext == ".csv" || ext == ".xlsx"
	}, byName)
}

// FindReports finds the CSV report files in dir, newest first
func (d *Discovery) FindReports(dir string) ([]FileInfo, error) {
	return d.find(dir, func(name string) bool {
		return strings.ToLower(filepath.Ext(name)) == ".csv"
	}, byModTimeDesc)
}

func (d *Discovery) find(dir string, match func(string) bool, order func([]FileInfo)) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	order(files)
	return files, nil
}

func byName(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
}

func byModTimeDesc(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
}
