// =============================================================================
// Quota Data Transformer - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the CLI:
//   - Output directory management
//   - Input file discovery in a directory
//   - Output file naming with placeholders
//   - Atomic output writes
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager writes export files below one output directory.
type FileManager struct {
	// OutputDir is where exported files are written.
	OutputDir string

	// NameFormat is the output file name template, see GenerateOutputFileName.
	NameFormat string
}

// NewFileManager creates a FileManager.
func NewFileManager(outputDir, nameFormat string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		NameFormat: nameFormat,
	}
}

// EnsureOutputDir creates the output directory if needed.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// Write names a file from the template and params and writes data to it.
// It returns the written path.
func (fm *FileManager) Write(params map[string]string, ext string, data []byte) (string, error) {
	if err := fm.EnsureOutputDir(); err != nil {
		return "", err
	}
	name := GenerateOutputFileName(fm.NameFormat, params, ext)
	path := filepath.Join(fm.OutputDir, name)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files directly inside dir whose
// extension is in extensions (lower-case, dot included). Results are sorted.
func DiscoverInputFiles(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands a file name template.
//
// PLACEHOLDERS:
//   - {uuid}: a random UUID
//   - {timestamp}: YYYYMMDD_HHMMSS
//   - {date}: YYYYMMDD
//   - {time}: HHMMSS
//   - {key}: any entry of params
//
// Parameter values are sanitized for use in file names. ext is appended when
// the result does not already end with it.
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = SanitizeFileComponent(value)
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// SanitizeFileComponent replaces whitespace runs with "_" and drops
// characters that are not allowed in file names on common platforms.
func SanitizeFileComponent(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), "_")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
