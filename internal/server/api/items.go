// Package api provides HTTP API handlers for the Wishtree interaction service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/renderix/wishtree/internal/store"
)

// ItemsHandler handles HTTP requests for item resources.
type ItemsHandler struct {
	store *store.Store
}

// NewItemsHandler creates a new ItemsHandler with the given store.
func NewItemsHandler(s *store.Store) *ItemsHandler {
	return &ItemsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/items or /api/items/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/items")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/items
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/items/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type updateItemRequest struct {
	Message   string `json:"message"`
	ImagePath string `json:"image_path"`
}

type itemResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Slot      int    `json:"slot"`
	Message   string `json:"message"`
	ImagePath string `json:"image_path"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listItemsResponse struct {
	Items []itemResponse `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toItemResponse converts a store.Item to an itemResponse.
func toItemResponse(it *store.Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		Category:  string(it.Category),
		Slot:      it.Slot,
		Message:   it.Message,
		ImagePath: it.ImagePath,
		CreatedAt: it.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: it.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/items and returns all items, optionally filtered
// by ?category=gift|frame.
func (h *ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []store.Item
		err   error
	)

	category := r.URL.Query().Get("category")
	switch category {
	case "":
		items, err = h.store.Items().List()
	case string(store.CategoryGift), string(store.CategoryFrame):
		items, err = h.store.Items().ListByCategory(store.Category(category))
	default:
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}

	response := listItemsResponse{
		Items: make([]itemResponse, 0, len(items)),
	}

	for i := range items {
		response.Items = append(response.Items, toItemResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/items/{id} and returns a single item.
func (h *ItemsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.store.Items().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// update handles PUT /api/items/{id} and replaces an item's editable
// content. Identity, category, and slot are fixed at seed time.
func (h *ItemsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.store.Items().UpdateContent(id, req.Message, req.ImagePath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	item, err := h.store.Items().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}
