package posts

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/render"
)

// Exporter writes posts as static pages.
type Exporter struct {
	posts    *Manager
	renderer *render.Renderer
}

// NewExporter creates an exporter.
func NewExporter(m *Manager, r *render.Renderer) *Exporter {
	return &Exporter{posts: m, renderer: r}
}

// Path returns where a post is written below dir.
func Path(dir string, p model.Post) string {
	return filepath.Join(dir, p.Category, p.Slug+".html")
}

// Export writes a single post below dir and returns the file path.
// Posts whose category or slug could leave dir are refused.
func (e *Exporter) Export(dir string, p model.Post) (string, error) {
	if !model.ValidCategory(p.Category) {
		return "", fmt.Errorf("export post %s: %w: %s", p.ID, ErrInvalidCategory, p.Category)
	}

	if !ValidSlug(p.Slug) {
		return "", fmt.Errorf("export post %s: %w: %q", p.ID, ErrInvalidSlug, p.Slug)
	}

	path := Path(dir, p)

	err := render.WriteFile(path, func(w io.Writer) error {
		return e.renderer.Post(w, p)
	})
	if err != nil {
		return "", fmt.Errorf("export post %s: %w", p.Slug, err)
	}

	return path, nil
}

// ExportAll writes every published post and the category listing pages.
// The returned paths, relative to dir, are the files to upload.
func (e *Exporter) ExportAll(dir string) ([]string, error) {
	var files []string

	for _, cat := range model.Categories {
		list, err := e.posts.List(cat, 0)
		if err != nil {
			return files, err
		}

		published := make([]model.Post, 0, len(list))

		for _, p := range list {
			if !p.Published {
				continue
			}

			if _, err := e.Export(dir, p); err != nil {
				return files, err
			}

			published = append(published, p)
			files = append(files, filepath.ToSlash(filepath.Join(cat, p.Slug+".html")))
		}

		listing := filepath.Join(dir, cat+".html")

		err = render.WriteFile(listing, func(w io.Writer) error {
			return e.renderer.Category(w, cat, published)
		})
		if err != nil {
			return files, fmt.Errorf("export %s listing: %w", cat, err)
		}

		files = append(files, cat+".html")
	}

	return files, nil
}
