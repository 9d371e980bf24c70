package posts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/render"
	"github.com/inovacc/roundboard/internal/store"
)

var t0 = time.Date(2025, 10, 28, 4, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, *clock.Fake) {
	t.Helper()

	fake := clock.NewFake(t0)

	return NewManager(store.NewMemory(), fake), fake
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Big   Sale!! 50% off ", "-big-sale-50-off-"},
		{"Mall -- Opening", "mall-opening"},
		{"Ünïcode Only", "ncode-only"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short...", Excerpt("short"))

	long := strings.Repeat("x", 250)
	assert.Equal(t, strings.Repeat("x", 200)+"...", Excerpt(long))
}

func TestAdd_Defaults(t *testing.T) {
	m, _ := newManager(t)

	p, err := m.Add(model.CategoryNews, Draft{Title: "Result Time Changed", Content: "New timings from Monday."})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "result-time-changed", p.Slug)
	assert.Equal(t, "/news/result-time-changed.html", p.Permalink)
	assert.Equal(t, "New timings from Monday....", p.Excerpt)
	assert.Equal(t, p.Excerpt, p.MetaDescription)
	assert.Equal(t, DefaultAuthor, p.Author)
	assert.Equal(t, "28 October 2025", p.DateFormatted)
	assert.True(t, p.Published)
	assert.Nil(t, p.UpdatedAt)

	got, err := m.ByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Slug, got.Slug)
}

func TestAdd_Validation(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.Add("sports", Draft{Title: "x"})
	require.ErrorIs(t, err, ErrInvalidCategory)

	_, err = m.Add(model.CategoryNews, Draft{Title: "  "})
	require.Error(t, err)

	_, err = m.Add(model.CategoryNews, Draft{Title: "!!!"})
	require.Error(t, err)

	_, err = m.Add(model.CategoryMall, Draft{Title: "Same"})
	require.NoError(t, err)

	_, err = m.Add(model.CategoryMall, Draft{Title: "Same"})
	require.Error(t, err, "duplicate slug in a category")

	_, err = m.Add(model.CategoryNews, Draft{Title: "Same"})
	require.NoError(t, err, "slugs are unique per category")
}

func TestAdd_ExplicitSlug(t *testing.T) {
	m, _ := newManager(t)

	p, err := m.Add(model.CategoryNews, Draft{Title: "Holiday Notice", Slug: "closed-sunday"})
	require.NoError(t, err)
	assert.Equal(t, "/news/closed-sunday.html", p.Permalink)

	for _, slug := range []string{"../../escaped", "news/inner", "Upper", "dot.html", strings.Repeat("a", 101)} {
		t.Run(slug, func(t *testing.T) {
			_, err := m.Add(model.CategoryNews, Draft{Title: "Holiday Notice", Slug: slug})
			require.ErrorIs(t, err, ErrInvalidSlug)
		})
	}

	list, err := m.List(model.CategoryNews, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestList_NewestFirst(t *testing.T) {
	m, fake := newManager(t)

	_, err := m.Add(model.CategoryNews, Draft{Title: "First"})
	require.NoError(t, err)

	fake.Advance(time.Hour)

	_, err = m.Add(model.CategoryMall, Draft{Title: "Second"})
	require.NoError(t, err)

	fake.Advance(time.Hour)

	_, err = m.Add(model.CategoryNews, Draft{Title: "Third"})
	require.NoError(t, err)

	all, err := m.List("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, slugs(all))

	news, err := m.List(model.CategoryNews, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "first"}, slugs(news))

	limited, err := m.List("", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = m.List("sports", 0)
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestBySlug(t *testing.T) {
	m, _ := newManager(t)

	p, err := m.Add(model.CategoryMall, Draft{Title: "New Store"})
	require.NoError(t, err)

	got, err := m.BySlug(model.CategoryMall, "new-store")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = m.BySlug(model.CategoryNews, "new-store")
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	m, fake := newManager(t)

	p, err := m.Add(model.CategoryNews, Draft{Title: "Draft", Content: "old"})
	require.NoError(t, err)

	fake.Advance(time.Hour)

	content := "new"
	unpublished := false

	updated, err := m.Update(p.ID, Patch{Content: &content, Published: &unpublished})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
	assert.Equal(t, "Draft", updated.Title)
	assert.False(t, updated.Published)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(t0.Add(time.Hour)))

	_, err = m.Update("missing", Patch{Content: &content})
	require.ErrorIs(t, err, ErrPostNotFound)

	require.NoError(t, m.Delete(p.ID))
	require.ErrorIs(t, m.Delete(p.ID), ErrPostNotFound)

	_, err = m.ByID(p.ID)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestExportAll(t *testing.T) {
	m, _ := newManager(t)

	r, err := render.New(render.SiteConfig{Title: "Mall Kolkata"})
	require.NoError(t, err)

	news, err := m.Add(model.CategoryNews, Draft{Title: "Holiday Notice", Content: "<p>Closed on Sunday</p>"})
	require.NoError(t, err)

	hidden, err := m.Add(model.CategoryMall, Draft{Title: "Hidden"})
	require.NoError(t, err)

	off := false
	_, err = m.Update(hidden.ID, Patch{Published: &off})
	require.NoError(t, err)

	dir := t.TempDir()
	e := NewExporter(m, r)

	files, err := e.ExportAll(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"news/holiday-notice.html", "news.html", "mall.html"}, files)

	data, err := os.ReadFile(Path(dir, news))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>Closed on Sunday</p>")

	_, err = os.Stat(filepath.Join(dir, "mall", "hidden.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_RefusesPathsOutsideDir(t *testing.T) {
	r, err := render.New(render.SiteConfig{})
	require.NoError(t, err)

	e := NewExporter(nil, r)
	root := t.TempDir()
	dir := filepath.Join(root, "a", "site")

	_, err = e.Export(dir, model.Post{ID: "1", Category: model.CategoryNews, Slug: "../../escaped"})
	require.ErrorIs(t, err, ErrInvalidSlug)

	_, err = e.Export(dir, model.Post{ID: "2", Category: "..", Slug: "escaped"})
	require.ErrorIs(t, err, ErrInvalidCategory)

	_, err = os.Stat(filepath.Join(root, "a", "escaped.html"))
	assert.True(t, os.IsNotExist(err))
}

func slugs(list []model.Post) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Slug)
	}

	return out
}
