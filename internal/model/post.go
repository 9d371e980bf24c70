package model

import "time"

// Post categories.
const (
	CategoryNews = "news"
	CategoryMall = "mall"
)

// Categories lists every post category in display order.
var Categories = []string{CategoryNews, CategoryMall}

// ValidCategory reports whether c names a known post category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// Post is a static blog post published as <category>/<slug>.html.
type Post struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Permalink       string     `json:"permalink"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	Image           string     `json:"image"`
	Category        string     `json:"category"`
	Date            time.Time  `json:"date"`
	DateFormatted   string     `json:"dateFormatted"`
	Author          string     `json:"author"`
	MetaDescription string     `json:"metaDescription"`
	Keywords        string     `json:"keywords"`
	Published       bool       `json:"published"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}
