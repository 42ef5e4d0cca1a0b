// Package output handles file naming and writing for briefing artifacts.
// Every artifact of a run is named news_<YYYY-MM-DD><ext> and overwrites the
// previous run's file of the same name.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Writer writes rendered artifacts to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the system temporary directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		outputDir = os.TempDir()
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// FileName returns the download name for an artifact of the given date.
// Example: 2026-10-15 and ".pdf" → news_2026-10-15.pdf
func FileName(date time.Time, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return "news_" + date.Format("2006-01-02") + ext
}

// Write stores data as FileName(date, ext) and returns the full path.
func (w *Writer) Write(date time.Time, ext string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, FileName(date, ext))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
