package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/renderix/wishtree/internal/scene"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SceneHub fans per-tick item transforms out to connected renderers and
// accepts camera-pose reports back from them. The render loop pushes
// into Publish; the hub never drives its own clock.
type SceneHub struct {
	clients  map[*websocket.Conn]bool
	onCamera func(scene.CameraPose)
	mu       sync.RWMutex
}

// NewSceneHub creates an empty hub.
func NewSceneHub() *SceneHub {
	return &SceneHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// OnCamera registers the sink for camera poses reported by renderers.
func (h *SceneHub) OnCamera(fn func(scene.CameraPose)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCamera = fn
}

// sceneFrame is the outbound message: one transform per item.
type sceneFrame struct {
	Items     []scene.Transform `json:"items"`
	Timestamp int64             `json:"timestamp"`
}

// inboundMessage is what renderers send back. Only camera-pose reports
// are understood; anything else is ignored.
type inboundMessage struct {
	Type   string           `json:"type"`
	Camera scene.CameraPose `json:"camera"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SceneHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "camera" {
			continue
		}

		h.mu.RLock()
		sink := h.onCamera
		h.mu.RUnlock()
		if sink != nil {
			sink(msg.Camera)
		}
	}
}

// Publish sends one render tick's transforms to every connected client.
// With no clients it is a no-op, so the render loop can call it
// unconditionally.
func (h *SceneHub) Publish(transforms []scene.Transform) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(sceneFrame{
		Items:     transforms,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected renderers.
func (h *SceneHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
