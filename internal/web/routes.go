package web

import "net/http"

// setupRoutes mirrors the layout of an exported site: index.html at the
// root, <category>.html listings and <category>/<slug>.html posts.
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Pages
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /{page}", s.handlePage)
	mux.HandleFunc("GET /{category}/{file}", s.handlePost)

	// Results API
	mux.HandleFunc("GET /api/results", s.handleCatalog)
	mux.HandleFunc("GET /api/results/today", s.handleToday)
	mux.HandleFunc("GET /api/results/{date}", s.handleResult)

	// Posts API
	mux.HandleFunc("GET /api/posts", s.handleListPosts)

	// System
	mux.HandleFunc("GET /health", s.handleHealth)
}
