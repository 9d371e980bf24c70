// Package render draws result records for the terminal and exports the
// static HTML site.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"maps"

	"github.com/Masterminds/sprig/v3"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Empty is shown in place of a missing digit or sum.
const Empty = "–"

// SiteConfig is stamped into every exported page.
type SiteConfig struct {
	Title       string
	AnalyticsID string
	AdsenseCode string

	// OldLimit caps the older results on the index page, <= 0 means 20
	OldLimit int
}

// SiteConfigFrom extracts the site settings from the application config.
func SiteConfigFrom(cfg model.Config) SiteConfig {
	return SiteConfig{
		Title:       cfg.SiteTitle,
		AnalyticsID: cfg.AnalyticsID,
		AdsenseCode: cfg.AdsenseCode,
		OldLimit:    cfg.OldResultsLimit,
	}
}

type siteView struct {
	Title       string
	Year        int
	AnalyticsID string
	AdsenseCode template.HTML
}

type tableView struct {
	Heading string
	Record  model.RoundRecord
}

type pageView struct {
	Site   siteView
	Root   string
	Active string

	Today    tableView
	Old      []tableView
	Post     model.Post
	Category string
	Posts    []model.Post
}

// Renderer executes the page templates.
type Renderer struct {
	cfg       SiteConfig
	clock     clock.Clock
	templates map[string]*template.Template
}

// New parses the embedded templates.
func New(cfg SiteConfig) (*Renderer, error) {
	if cfg.OldLimit <= 0 {
		cfg.OldLimit = 20
	}

	if cfg.Title == "" {
		cfg.Title = model.DefaultConfig().SiteTitle
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{cfg: cfg, clock: clock.System{}, templates: tmpl}, nil
}

// WithClock sets the clock that dates the pages.
func (r *Renderer) WithClock(c clock.Clock) *Renderer {
	if c != nil {
		r.clock = c
	}

	return r
}

// templateFuncMap returns sprig's functions plus the page helpers.
func templateFuncMap() template.FuncMap {
	funcs := sprig.FuncMap()

	maps.Copy(funcs, template.FuncMap{
		"cell": func(s string) string {
			if s == "" {
				return Empty
			}

			return s
		},
		"raw": func(s string) template.HTML {
			return template.HTML(s) //nolint:gosec // post bodies are authored HTML
		},
		"categoryLabel": CategoryLabel,
	})

	return funcs
}

// parseTemplates gives each page its own instance so content blocks do not
// collide.
func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	funcMap := templateFuncMap()

	for _, page := range []string{"index.html", "post.html", "category.html"} {
		tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/layout.html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout: %w", err)
		}

		tmpl, err = tmpl.ParseFS(templatesFS, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}

		templates[page] = tmpl
	}

	return templates, nil
}

// CategoryLabel is the human name of a post category.
func CategoryLabel(category string) string {
	switch category {
	case model.CategoryNews:
		return "News"
	case model.CategoryMall:
		return "Mall Info"
	}

	return category
}

func (r *Renderer) site() siteView {
	return siteView{
		Title:       r.cfg.Title,
		Year:        clock.NowLocal(r.clock).Year(),
		AnalyticsID: r.cfg.AnalyticsID,
		AdsenseCode: template.HTML(r.cfg.AdsenseCode), //nolint:gosec // configured by the site owner
	}
}

func (r *Renderer) execute(w io.Writer, page string, view pageView) error {
	view.Site = r.site()

	if err := r.templates[page].ExecuteTemplate(w, "layout", view); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	return nil
}

// Index renders the result page: today's table and up to OldLimit older
// records, newest first.
func (r *Renderer) Index(w io.Writer, catalog model.Catalog, todayKey string) error {
	view := pageView{
		Root:   "",
		Active: "home",
		Today:  tableView{Heading: clock.DisplayKey(todayKey), Record: catalog[todayKey]},
	}

	for _, key := range catalog.Recent(todayKey, r.cfg.OldLimit) {
		view.Old = append(view.Old, tableView{Heading: clock.DisplayKey(key), Record: catalog[key]})
	}

	return r.execute(w, "index.html", view)
}

// Post renders a single post page, which lives one folder below the root.
func (r *Renderer) Post(w io.Writer, post model.Post) error {
	return r.execute(w, "post.html", pageView{
		Root:   "../",
		Active: post.Category,
		Post:   post,
	})
}

// Category renders the listing page of a category.
func (r *Renderer) Category(w io.Writer, category string, posts []model.Post) error {
	return r.execute(w, "category.html", pageView{
		Root:     "",
		Active:   category,
		Category: category,
		Posts:    posts,
	})
}
