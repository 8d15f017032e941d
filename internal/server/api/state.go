package api

import (
	"encoding/json"
	"net/http"

	"github.com/renderix/wishtree/internal/gesture"
	"github.com/renderix/wishtree/internal/scene"
)

// Controller is the application surface the state API drives. Manual
// overrides go through InjectGesture so they take the same transition
// path as camera-confirmed gestures.
type Controller interface {
	Scene() *scene.Controller
	InjectGesture(label gesture.Label) error
	IsEnabled() bool
	SetEnabled(enabled bool)
}

// StateHandler handles scene state reads, manual gesture overrides, and
// camera control toggling.
type StateHandler struct {
	control Controller
}

// NewStateHandler creates a new StateHandler with the given controller.
func NewStateHandler(control Controller) *StateHandler {
	return &StateHandler{control: control}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/state":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.state(w, r)
	case "/api/override":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.override(w, r)
	case "/api/control":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.setControl(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Request and response types

type overrideRequest struct {
	Gesture string `json:"gesture"`
}

type controlRequest struct {
	Enabled bool `json:"enabled"`
}

type stateResponse struct {
	Formation string `json:"formation"`
	Mode      string `json:"mode"`
	RawLabel  string `json:"raw_label"`
	Targeted  string `json:"targeted,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// toStateResponse combines scene state with the camera-control flag.
func (h *StateHandler) toStateResponse() stateResponse {
	st := h.control.Scene().State()
	return stateResponse{
		Formation: string(st.Formation),
		Mode:      string(st.Mode),
		RawLabel:  string(st.RawLabel),
		Targeted:  st.Targeted,
		Enabled:   h.control.IsEnabled(),
	}
}

// state handles GET /api/state and returns the current scene state.
func (h *StateHandler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toStateResponse())
}

// override handles POST /api/override and applies a manual gesture.
func (h *StateHandler) override(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Gesture == "" {
		writeError(w, http.StatusBadRequest, "Gesture is required")
		return
	}

	if err := h.control.InjectGesture(gesture.Label(req.Gesture)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gesture")
		return
	}

	writeJSON(w, http.StatusOK, h.toStateResponse())
}

// setControl handles POST /api/control and toggles camera-driven control.
func (h *StateHandler) setControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.control.SetEnabled(req.Enabled)
	writeJSON(w, http.StatusOK, h.toStateResponse())
}
