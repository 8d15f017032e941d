package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renderix/wishtree/internal/gesture"
	"github.com/renderix/wishtree/internal/scene"
)

// fakeControl is a minimal Controller for handler tests. InjectGesture
// routes through the real scene transition table, matching the app.
type fakeControl struct {
	scene   *scene.Controller
	enabled bool
}

func newFakeControl(t *testing.T) *fakeControl {
	t.Helper()

	pool := scene.NewPool(
		[]string{"gift-01", "gift-02", "gift-03"},
		[]string{"frame-01", "frame-02"},
	)
	rng := rand.New(rand.NewPCG(3, 9))
	return &fakeControl{
		scene:   scene.NewController(pool, scene.DefaultConfig(), rng),
		enabled: true,
	}
}

func (f *fakeControl) Scene() *scene.Controller { return f.scene }

func (f *fakeControl) InjectGesture(label gesture.Label) error {
	if !label.Valid() {
		return errors.New("invalid gesture label")
	}
	f.scene.Apply(label)
	return nil
}

func (f *fakeControl) IsEnabled() bool         { return f.enabled }
func (f *fakeControl) SetEnabled(enabled bool) { f.enabled = enabled }

func TestStateHandler_State(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Formation != string(scene.FormationScattered) {
		t.Errorf("expected formation 'scattered', got %q", response.Formation)
	}
	if response.Mode != string(scene.ModeIdle) {
		t.Errorf("expected mode 'idle', got %q", response.Mode)
	}
	if !response.Enabled {
		t.Error("expected enabled to be true")
	}
}

func TestStateHandler_Override(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	body, _ := json.Marshal(overrideRequest{Gesture: "pinch"})
	req := httptest.NewRequest(http.MethodPost, "/api/override", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Mode != string(scene.ModePullingFrame) {
		t.Errorf("expected mode 'pulling_frame', got %q", response.Mode)
	}
	if response.Targeted == "" {
		t.Error("expected a targeted item after pinch override")
	}
}

func TestStateHandler_OverrideFormation(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	body, _ := json.Marshal(overrideRequest{Gesture: "fist"})
	req := httptest.NewRequest(http.MethodPost, "/api/override", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Formation != string(scene.FormationTree) {
		t.Errorf("expected formation 'tree', got %q", response.Formation)
	}
	if response.Mode != string(scene.ModeIdle) {
		t.Errorf("expected mode 'idle', got %q", response.Mode)
	}
}

func TestStateHandler_OverrideInvalidGesture(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	body, _ := json.Marshal(overrideRequest{Gesture: "jazz_hands"})
	req := httptest.NewRequest(http.MethodPost, "/api/override", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestStateHandler_OverrideMissingGesture(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	body, _ := json.Marshal(overrideRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/override", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestStateHandler_Control(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	body, _ := json.Marshal(controlRequest{Enabled: false})
	req := httptest.NewRequest(http.MethodPost, "/api/control", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if control.IsEnabled() {
		t.Error("expected camera control to be disabled")
	}

	var response stateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Enabled {
		t.Error("expected enabled false in response")
	}
}

func TestStateHandler_MethodNotAllowed(t *testing.T) {
	control := newFakeControl(t)
	handler := NewStateHandler(control)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/state"},
		{http.MethodGet, "/api/override"},
		{http.MethodGet, "/api/control"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status %d, got %d", tt.method, tt.path, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
