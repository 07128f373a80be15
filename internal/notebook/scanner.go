package notebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile is a PDF found in a notebook directory.
type ScannedFile struct {
	Notebook string // Notebook name (directory name under the source root)
	Source   string // Base filename, used as the document source
	AbsPath  string
}

// ScanAll lists every PDF under the source root, grouped by notebook directory.
// Hidden directories and those whose names are not valid notebook names are skipped.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	entries, err := os.ReadDir(m.sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read source directory %s: %w", m.sourceDir, err)
	}

	var scannedFiles []ScannedFile
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || ValidateName(entry.Name()) != nil {
			continue
		}

		files, err := m.ScanNotebook(entry.Name())
		if err != nil {
			return scannedFiles, err
		}
		scannedFiles = append(scannedFiles, files...)
	}

	return scannedFiles, nil
}

// ScanNotebook lists the PDFs stored directly in the notebook's directory, sorted by name.
func (m *Manager) ScanNotebook(name string) ([]ScannedFile, error) {
	dir := m.Dir(name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan notebook %s: %w", name, err)
	}

	var files []ScannedFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entry.Name(), err)
		}
		files = append(files, ScannedFile{
			Notebook: name,
			Source:   entry.Name(),
			AbsPath:  abs,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Source < files[j].Source })
	return files, nil
}
