package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"github.com/renderix/wishtree/internal/scene"
)

// dialHub starts a test server around the hub and dials it.
func dialHub(t *testing.T, hub *SceneHub) (*websocket.Conn, func()) {
	t.Helper()

	srv := New(Config{Hub: hub})
	ts := httptest.NewServer(srv)

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws/scene"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("failed to dial websocket: %v", err)
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func waitForClients(t *testing.T, hub *SceneHub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d clients (have %d)", n, hub.ClientCount())
}

func TestSceneHub_PublishToClient(t *testing.T) {
	hub := NewSceneHub()
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	waitForClients(t, hub, 1)

	transforms := []scene.Transform{
		{
			ID:       "gift-01",
			Category: "gift",
			Position: [3]float64{1.0, 2.0, 3.0},
			Rotation: [4]float64{0, 0, 0, 1},
			Targeted: true,
			Anim:     0.5,
		},
	}
	hub.Publish(transforms)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}

	var frame sceneFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("failed to unmarshal frame: %v", err)
	}

	if len(frame.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(frame.Items))
	}
	if frame.Items[0].ID != "gift-01" {
		t.Errorf("expected item ID 'gift-01', got %q", frame.Items[0].ID)
	}
	if !frame.Items[0].Targeted {
		t.Error("expected item to be targeted")
	}
	if frame.Timestamp == 0 {
		t.Error("expected nonzero timestamp")
	}
}

func TestSceneHub_CameraReport(t *testing.T) {
	hub := NewSceneHub()

	poseCh := make(chan scene.CameraPose, 1)
	hub.OnCamera(func(pose scene.CameraPose) {
		select {
		case poseCh <- pose:
		default:
		}
	})

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	waitForClients(t, hub, 1)

	msg := inboundMessage{
		Type: "camera",
		Camera: scene.CameraPose{
			Position: mgl64.Vec3{0, 1.6, 4},
			Forward:  mgl64.Vec3{0, 0, -1},
			Up:       mgl64.Vec3{0, 1, 0},
		},
	}
	data, _ := json.Marshal(msg)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("failed to write message: %v", err)
	}

	select {
	case pose := <-poseCh:
		if pose.Position.Y() != 1.6 {
			t.Errorf("expected camera Y 1.6, got %v", pose.Position.Y())
		}
		if pose.Forward.Z() != -1 {
			t.Errorf("expected forward Z -1, got %v", pose.Forward.Z())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("camera pose never reached the sink")
	}
}

func TestSceneHub_IgnoresUnknownMessages(t *testing.T) {
	hub := NewSceneHub()

	called := make(chan struct{}, 1)
	hub.OnCamera(func(scene.CameraPose) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	waitForClients(t, hub, 1)

	// Garbage, then an unknown type: neither should hit the sink or
	// kill the connection.
	conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"telemetry"}`))

	select {
	case <-called:
		t.Fatal("camera sink called for non-camera message")
	case <-time.After(200 * time.Millisecond):
	}

	if hub.ClientCount() != 1 {
		t.Errorf("expected client to stay connected, have %d", hub.ClientCount())
	}
}
