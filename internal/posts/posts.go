// Package posts manages the static blog posts of the site.
//
// Posts are kept per category, newest first, in a single blob and
// published as <category>/<slug>.html pages.
package posts

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/store"
)

const (
	// DefaultAuthor signs posts added without an author
	DefaultAuthor = "Admin"

	maxSlugLen    = 100
	maxExcerptLen = 200
)

var (
	// ErrPostNotFound is returned when no post matches the lookup.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidCategory is returned for categories other than news and mall.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidSlug is returned for slugs outside [a-z0-9-].
	ErrInvalidSlug = errors.New("slug may only contain a-z, 0-9 and -")
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
	slugValid  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Draft is the author supplied part of a post.
type Draft struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	Image           string
	Author          string
	MetaDescription string
	Keywords        string
}

// Patch changes selected fields of a post. Nil fields are left alone.
type Patch struct {
	Title           *string
	Content         *string
	Excerpt         *string
	Image           *string
	Author          *string
	MetaDescription *string
	Keywords        *string
	Published       *bool
}

type collection map[string][]model.Post

// Manager stores posts in a BlobStore.
type Manager struct {
	blobs store.BlobStore
	clock clock.Clock
	mu    sync.Mutex
}

// NewManager creates a post manager. A nil clock means the system clock.
func NewManager(blobs store.BlobStore, c clock.Clock) *Manager {
	if c == nil {
		c = clock.System{}
	}

	return &Manager{blobs: blobs, clock: c}
}

// Slugify turns a title into a URL-friendly slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")

	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}

	return s
}

// ValidSlug reports whether slug is safe as a file name and URL segment.
func ValidSlug(slug string) bool {
	return len(slug) <= maxSlugLen && slugValid.MatchString(slug)
}

// Excerpt returns the first 200 characters of content followed by "...".
func Excerpt(content string) string {
	if utf8.RuneCountInString(content) <= maxExcerptLen {
		return content + "..."
	}

	return string([]rune(content)[:maxExcerptLen]) + "..."
}

// Add creates a post at the top of category.
func (m *Manager) Add(category string, d Draft) (model.Post, error) {
	if !model.ValidCategory(category) {
		return model.Post{}, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	if strings.TrimSpace(d.Title) == "" {
		return model.Post{}, errors.New("title is required")
	}

	slug := d.Slug
	if slug == "" {
		slug = Slugify(d.Title)
		if slug == "" {
			return model.Post{}, fmt.Errorf("title %q produces an empty slug", d.Title)
		}
	}

	if !ValidSlug(slug) {
		return model.Post{}, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	excerpt := d.Excerpt
	if excerpt == "" {
		excerpt = Excerpt(d.Content)
	}

	meta := d.MetaDescription
	if meta == "" {
		meta = excerpt
	}

	author := d.Author
	if author == "" {
		author = DefaultAuthor
	}

	now := m.clock.Now()

	post := model.Post{
		ID:              uuid.NewString(),
		Title:           d.Title,
		Slug:            slug,
		Permalink:       "/" + category + "/" + slug + ".html",
		Content:         d.Content,
		Excerpt:         excerpt,
		Image:           d.Image,
		Category:        category,
		Date:            now.UTC(),
		DateFormatted:   clock.DisplayDate(now),
		Author:          author,
		MetaDescription: meta,
		Keywords:        d.Keywords,
		Published:       true,
	}

	err := m.update(func(c collection) (bool, error) {
		for _, p := range c[category] {
			if p.Slug == slug {
				return false, fmt.Errorf("a %s post with slug %q already exists", category, slug)
			}
		}

		c[category] = append([]model.Post{post}, c[category]...)

		return true, nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return post, nil
}

// List returns posts of category, or of every category merged newest
// first when category is empty. A limit <= 0 means no limit.
func (m *Manager) List(category string, limit int) ([]model.Post, error) {
	c, err := m.loadLocked()
	if err != nil {
		return nil, err
	}

	var out []model.Post

	if category != "" {
		if !model.ValidCategory(category) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
		}

		out = append(out, c[category]...)
	} else {
		for _, cat := range model.Categories {
			out = append(out, c[cat]...)
		}

		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.After(out[j].Date)
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// BySlug finds a post within category.
func (m *Manager) BySlug(category, slug string) (model.Post, error) {
	c, err := m.loadLocked()
	if err != nil {
		return model.Post{}, err
	}

	for _, p := range c[category] {
		if p.Slug == slug {
			return p, nil
		}
	}

	return model.Post{}, ErrPostNotFound
}

// ByID finds a post in any category.
func (m *Manager) ByID(id string) (model.Post, error) {
	c, err := m.loadLocked()
	if err != nil {
		return model.Post{}, err
	}

	for _, cat := range model.Categories {
		for _, p := range c[cat] {
			if p.ID == id {
				return p, nil
			}
		}
	}

	return model.Post{}, ErrPostNotFound
}

// Update applies patch to the post with id and stamps UpdatedAt.
func (m *Manager) Update(id string, patch Patch) (model.Post, error) {
	var updated model.Post

	err := m.update(func(c collection) (bool, error) {
		for _, cat := range model.Categories {
			for i, p := range c[cat] {
				if p.ID != id {
					continue
				}

				patch.apply(&p)

				now := m.clock.Now().UTC()
				p.UpdatedAt = &now

				c[cat][i] = p
				updated = p

				return true, nil
			}
		}

		return false, ErrPostNotFound
	})

	return updated, err
}

// Delete removes the post with id.
func (m *Manager) Delete(id string) error {
	return m.update(func(c collection) (bool, error) {
		for _, cat := range model.Categories {
			for i, p := range c[cat] {
				if p.ID == id {
					c[cat] = append(c[cat][:i], c[cat][i+1:]...)
					return true, nil
				}
			}
		}

		return false, ErrPostNotFound
	})
}

func (p Patch) apply(post *model.Post) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&post.Title, p.Title)
	set(&post.Content, p.Content)
	set(&post.Excerpt, p.Excerpt)
	set(&post.Image, p.Image)
	set(&post.Author, p.Author)
	set(&post.MetaDescription, p.MetaDescription)
	set(&post.Keywords, p.Keywords)

	if p.Published != nil {
		post.Published = *p.Published
	}
}

func (m *Manager) update(fn func(collection) (bool, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.load()
	if err != nil {
		return err
	}

	changed, err := fn(c)
	if err != nil || !changed {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}

	if err := m.blobs.SetBlob(store.BlobPosts, string(data)); err != nil {
		return fmt.Errorf("writing posts: %w", err)
	}

	return nil
}

func (m *Manager) loadLocked() (collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.load()
}

func (m *Manager) load() (collection, error) {
	raw, err := m.blobs.GetBlob(store.BlobPosts)
	if err != nil {
		return nil, fmt.Errorf("reading posts: %w", err)
	}

	c := make(collection, len(model.Categories))
	for _, cat := range model.Categories {
		c[cat] = []model.Post{}
	}

	if raw == "" {
		return c, nil
	}

	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}

	return c, nil
}
