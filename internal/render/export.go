package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/inovacc/roundboard/internal/model"
)

// WriteFile renders into path atomically: readers see the old page or the
// new page, never a partial one.
func WriteFile(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer

	if err := fn(&buf); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(path, 0o644); err != nil { //nolint:gosec // published web content
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	return nil
}

// ExportIndex writes <dir>/index.html and returns its path.
func (r *Renderer) ExportIndex(dir string, catalog model.Catalog, todayKey string) (string, error) {
	path := filepath.Join(dir, "index.html")

	err := WriteFile(path, func(w io.Writer) error {
		return r.Index(w, catalog, todayKey)
	})
	if err != nil {
		return "", err
	}

	return path, nil
}
