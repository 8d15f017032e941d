// Package server provides the HTTP surface of Wishtree: scene state and
// override API for the UI, item content API, a WebSocket transform feed
// for the renderer, and an MJPEG camera preview.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/renderix/wishtree/internal/capture"
	"github.com/renderix/wishtree/internal/server/api"
	"github.com/renderix/wishtree/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera

	// Control is the application surface driving state reads and manual
	// overrides; nil disables the state API (content-only servers in
	// tests).
	Control api.Controller

	// Hub is the scene WebSocket hub; nil disables /ws/scene.
	Hub *SceneHub
}

// Server represents the Wishtree HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		itemsHandler := api.NewItemsHandler(s.config.Store)
		s.mux.Handle("/api/items", itemsHandler)
		s.mux.Handle("/api/items/", itemsHandler)
	}

	if s.config.Control != nil {
		stateHandler := api.NewStateHandler(s.config.Control)
		s.mux.Handle("/api/state", stateHandler)
		s.mux.Handle("/api/override", stateHandler)
		s.mux.Handle("/api/control", stateHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Hub != nil {
		s.mux.Handle("/ws/scene", s.config.Hub)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
