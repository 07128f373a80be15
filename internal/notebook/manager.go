// Package notebook manages named notebooks and the PDF files stored for them on disk.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"notebook-ai/internal/storage"
)

// ErrInvalidName is returned for notebook names that fail validation.
var ErrInvalidName = errors.New("invalid notebook name")

// ErrInvalidFile is returned for uploads that are not PDF files.
var ErrInvalidFile = errors.New("invalid file")

var namePattern = regexp.MustCompile(`^[\p{L}\p{N} _.\-]+$`)

var validate = newValidator()

type nameInput struct {
	Name string `validate:"required,max=64,notebookname"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notebookname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if name == "." || name == ".." {
			return false
		}
		if strings.TrimSpace(name) != name {
			return false
		}
		return namePattern.MatchString(name)
	})
	return v
}

// ValidateName checks that name is usable both as a notebook name and as a directory name.
func ValidateName(name string) error {
	if err := validate.Struct(nameInput{Name: name}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Tag() {
			case "required":
				return fmt.Errorf("%w: name is required", ErrInvalidName)
			case "max":
				return fmt.Errorf("%w: name must be at most 64 characters", ErrInvalidName)
			}
		}
		return fmt.Errorf("%w: %q may contain only letters, digits, spaces, '-', '_' and '.'", ErrInvalidName, name)
	}
	return nil
}

// Manager resolves notebooks by name and owns their source directories.
type Manager struct {
	notebooks storage.NotebookStore
	sourceDir string
}

// NewManager creates a notebook manager rooted at sourceDir.
func NewManager(notebooks storage.NotebookStore, sourceDir string) *Manager {
	return &Manager{
		notebooks: notebooks,
		sourceDir: sourceDir,
	}
}

// Create validates name, stores the notebook and creates its source directory.
// Returns storage.ErrAlreadyExists if the name is taken.
func (m *Manager) Create(ctx context.Context, name string) (*storage.NotebookRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	nb, err := m.notebooks.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("failed to create notebook directory: %w", err)
	}
	return nb, nil
}

// GetOrCreate returns the notebook called name, creating it if needed.
func (m *Manager) GetOrCreate(ctx context.Context, name string) (*storage.NotebookRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	nb, err := m.notebooks.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get notebook %s: %w", name, err)
	}
	if err := os.MkdirAll(m.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("failed to create notebook directory: %w", err)
	}
	return nb, nil
}

// Get returns the notebook called name or storage.ErrNotFound.
func (m *Manager) Get(ctx context.Context, name string) (*storage.NotebookRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return m.notebooks.GetByName(ctx, name)
}

// List returns all notebooks ordered by name.
func (m *Manager) List(ctx context.Context) ([]storage.NotebookRecord, error) {
	return m.notebooks.List(ctx)
}

// Delete removes the notebook row (cascading to its documents, chunks and sessions)
// and the files stored for it.
func (m *Manager) Delete(ctx context.Context, nb *storage.NotebookRecord) error {
	if err := m.notebooks.Delete(ctx, nb.ID); err != nil {
		return err
	}
	if err := os.RemoveAll(m.Dir(nb.Name)); err != nil {
		return fmt.Errorf("failed to remove notebook directory: %w", err)
	}
	return nil
}

// Dir returns the directory holding the notebook's PDFs.
func (m *Manager) Dir(name string) string {
	return filepath.Join(m.sourceDir, name)
}

// SourceName reduces an uploaded filename to the base name used as the document source.
// Only .pdf files are accepted.
func SourceName(filename string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	if base == "/" || base == "." || base == "" {
		return "", fmt.Errorf("%w: empty filename", ErrInvalidFile)
	}
	if !strings.EqualFold(filepath.Ext(base), ".pdf") {
		return "", fmt.Errorf("%w: %s is not a PDF", ErrInvalidFile, base)
	}
	return base, nil
}

// SaveUpload writes r to the notebook directory under the sanitized filename and
// returns the source name and absolute path. An existing file with the same name is replaced.
func (m *Manager) SaveUpload(ctx context.Context, name, filename string, r io.Reader) (string, string, error) {
	source, err := SourceName(filename)
	if err != nil {
		return "", "", err
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	dir := m.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create notebook directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", "", fmt.Errorf("failed to write %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", source, err)
	}

	path := filepath.Join(dir, source)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", "", fmt.Errorf("failed to store %s: %w", source, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return source, path, nil
	}
	return source, abs, nil
}
