package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-timeline-export/internal/util"
)

// FileScanner discovers export files under a base directory
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner rooted at baseDir
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan walks the tree under baseDir and returns every .json file path.
// Paths are sorted lexicographically so repeated runs process files in
// the same order regardless of filesystem enumeration order.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.baseDir, err)
	}

	sort.Strings(files)

	duration := time.Since(start)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d JSON files",
		duration, dirCount, totalCount, len(files)))

	return files, nil
}
