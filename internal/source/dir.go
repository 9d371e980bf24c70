package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir reads files from a local directory, e.g. a checked out site.
type Dir struct {
	root   string
	prefix string
}

// NewDir creates a source rooted at root.
func NewDir(root, prefix string) *Dir {
	return &Dir{root: root, prefix: prefix}
}

// Path returns the file path a name resolves to.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(d.prefix), filepath.Base(name))
}

func (d *Dir) Fetch(ctx context.Context, name string) (Resource, error) {
	if err := ctx.Err(); err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}

	path := d.Path(name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Resource{}, ErrNotFound
	}

	if err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}

	if info.IsDir() {
		return Resource{}, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, &TransportError{Name: name, Err: err}
	}

	return Resource{Body: string(data), ModTime: info.ModTime()}, nil
}
