package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/posts"
)

// APIResponse is a generic API response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ResultData is one date of the catalog as served by the API.
type ResultData struct {
	Date   string            `json:"date"`
	Record model.RoundRecord `json:"record"`
}

// handleIndex renders today's results and the older days
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	catalog, err := s.results.Catalog()
	if err != nil {
		s.serverError(w, "failed to load catalog", err)
		return
	}

	s.renderHTML(w, func(buf *bytes.Buffer) error {
		return s.renderer.Index(buf, catalog, clock.Today(s.clock))
	})
}

// handlePage serves index.html and the <category>.html listings
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := r.PathValue("page")
	if page == "index.html" {
		s.handleIndex(w, r)
		return
	}

	category, ok := strings.CutSuffix(page, ".html")
	if !ok || !model.ValidCategory(category) {
		http.NotFound(w, r)
		return
	}

	list, err := s.published(category)
	if err != nil {
		s.serverError(w, "failed to list posts", err)
		return
	}

	s.renderHTML(w, func(buf *bytes.Buffer) error {
		return s.renderer.Category(buf, category, list)
	})
}

// handlePost serves <category>/<slug>.html
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	slug, ok := strings.CutSuffix(r.PathValue("file"), ".html")
	if !ok || !model.ValidCategory(category) {
		http.NotFound(w, r)
		return
	}

	post, err := s.posts.BySlug(category, slug)
	if errors.Is(err, posts.ErrPostNotFound) || (err == nil && !post.Published) {
		http.NotFound(w, r)
		return
	}

	if err != nil {
		s.serverError(w, "failed to load post", err)
		return
	}

	s.renderHTML(w, func(buf *bytes.Buffer) error {
		return s.renderer.Post(buf, post)
	})
}

// handleCatalog returns every stored date, newest first
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.results.Catalog()
	if err != nil {
		s.jsonError(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	keys := catalog.Keys()

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(keys) {
		keys = keys[len(keys)-limit:]
	}

	data := make([]ResultData, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		data = append(data, ResultData{Date: keys[i], Record: catalog[keys[i]]})
	}

	s.jsonResponse(w, APIResponse{Success: true, Data: data})
}

// handleToday returns today's record
func (s *Server) handleToday(w http.ResponseWriter, _ *http.Request) {
	s.writeResult(w, clock.Today(s.clock))
}

// handleResult returns the record of one date
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("date")
	if _, err := clock.ParseDateKey(key); err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeResult(w, key)
}

func (s *Server) writeResult(w http.ResponseWriter, key string) {
	rec, err := s.results.Get(key)
	if err != nil {
		s.jsonError(w, "failed to load result", http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Data: ResultData{Date: key, Record: rec}})
}

// handleListPosts returns published posts, optionally of one category
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	list, err := s.published(r.URL.Query().Get("category"))
	if errors.Is(err, posts.ErrInvalidCategory) {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err != nil {
		s.jsonError(w, "failed to list posts", http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Data: list})
}

// handleHealth returns health check status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) published(category string) ([]model.Post, error) {
	list, err := s.posts.List(category, 0)
	if err != nil {
		return nil, err
	}

	out := make([]model.Post, 0, len(list))

	for _, p := range list {
		if p.Published {
			out = append(out, p)
		}
	}

	return out, nil
}

// renderHTML buffers the page so a template error still yields a clean 500
func (s *Server) renderHTML(w http.ResponseWriter, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer

	if err := fn(&buf); err != nil {
		s.serverError(w, "template error", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("JSON encode error", "error", err)
	}
}

// jsonError writes a JSON error response
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   message,
	}); err != nil {
		s.logger.Error("JSON encode error", "error", err)
	}
}
