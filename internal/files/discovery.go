// Package files provides discovery of survey data files on disk.
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
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// resolve joins dir with the base path unless dir is already absolute.
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// ListFiles lists all regular files in the directory, sorted by name for
// deterministic iteration order.
func (d *Discovery) ListFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
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

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindByExtensions lists files whose extension matches one of the given
// lowercase extensions (with leading dot), sorted by name.
func (d *Discovery) FindByExtensions(dir string, exts ...string) ([]FileInfo, error) {
	all, err := d.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, file := range all {
		ext := strings.ToLower(filepath.Ext(file.Name))
		for _, want := range exts {
			if ext == want {
				files = append(files, file)
				break
			}
		}
	}

	return files, nil
}

// FindDataFiles finds all supported survey source files (.xlsx, .xls, .csv)
// in the specified directory.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	return d.FindByExtensions(dir, ".xlsx", ".xls", ".csv")
}

// FindExcelFiles finds all Excel files in the specified directory
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	return d.FindByExtensions(dir, ".xlsx", ".xls")
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.FindByExtensions(dir, ".csv")
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
