package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/renderix/wishtree/internal/app"
	"github.com/renderix/wishtree/internal/gesture"
	"github.com/renderix/wishtree/internal/scene"
	"github.com/renderix/wishtree/internal/server"
	"github.com/renderix/wishtree/internal/store"
	"github.com/renderix/wishtree/internal/tray"
)

const (
	serverAddr = ":8080"

	defaultGiftCount  = 8
	defaultFrameCount = 6
)

func main() {
	fmt.Println("Wishtree - Gesture-Driven Scene Control")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".wishtree")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "wishtree.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	giftIDs, frameIDs, err := loadItemIDs(st)
	if err != nil {
		log.Fatalf("Failed to load items: %v", err)
	}

	// Configure the application, letting persisted settings override
	// the built-in thresholds.
	settings := st.Settings()
	gestureCfg := gesture.DefaultConfig()
	gestureCfg.ExtensionMultiplier = settings.GetFloat("extension_multiplier", gestureCfg.ExtensionMultiplier)
	gestureCfg.ThumbDistance = settings.GetFloat("thumb_distance", gestureCfg.ThumbDistance)
	gestureCfg.PinchDistance = settings.GetFloat("pinch_distance", gestureCfg.PinchDistance)
	gestureCfg.Window = settings.GetInt("stabilizer_window", gestureCfg.Window)

	sceneCfg := scene.DefaultConfig()
	sceneCfg.FocusDistance = settings.GetFloat("focus_distance", sceneCfg.FocusDistance)
	sceneCfg.FocusSpeed = settings.GetFloat("focus_speed", sceneCfg.FocusSpeed)

	application := app.New(app.Config{
		Store:    st,
		CameraID: settings.GetInt("camera_id", 0),
		Mirror:   true,
		Gesture:  gestureCfg,
		Scene:    sceneCfg,
		GiftIDs:  giftIDs,
		FrameIDs: frameIDs,
	})

	// Scene WebSocket hub: transforms out, camera poses in.
	hub := server.NewSceneHub()
	hub.OnCamera(application.Scene().SetCamera)
	application.OnTransforms(hub.Publish)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Control:   application,
		Hub:       hub,
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine; quitting it tears everything down.
	tr := tray.New()
	tr.OnToggle(application.SetEnabled)
	tr.OnOpenUI(func() {
		openBrowser("http://localhost" + serverAddr)
	})
	tr.OnQuit(func() {
		application.Stop()
	})
	application.OnState(func(st scene.State) {
		tr.SetSceneState(string(st.Formation), string(st.Mode))
	})

	tr.Run()
}

// loadItemIDs returns the per-category item IDs from the store, seeding
// a default set on first run so the scene always has a pool to pull from.
func loadItemIDs(st *store.Store) (gifts, frames []string, err error) {
	items, err := st.Items().List()
	if err != nil {
		return nil, nil, err
	}

	if len(items) == 0 {
		items, err = seedItems(st)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, it := range items {
		switch it.Category {
		case store.CategoryGift:
			gifts = append(gifts, it.ID)
		case store.CategoryFrame:
			frames = append(frames, it.ID)
		}
	}
	return gifts, frames, nil
}

// seedItems creates the initial gift and frame records.
func seedItems(st *store.Store) ([]store.Item, error) {
	var items []store.Item

	for slot := 0; slot < defaultGiftCount; slot++ {
		items = append(items, store.Item{
			ID:       uuid.New().String(),
			Category: store.CategoryGift,
			Slot:     slot,
			Message:  fmt.Sprintf("Gift %d", slot+1),
		})
	}
	for slot := 0; slot < defaultFrameCount; slot++ {
		items = append(items, store.Item{
			ID:       uuid.New().String(),
			Category: store.CategoryFrame,
			Slot:     slot,
			Message:  fmt.Sprintf("Frame %d", slot+1),
		})
	}

	for i := range items {
		if err := st.Items().Create(&items[i]); err != nil {
			return nil, fmt.Errorf("seeding %s slot %d: %w", items[i].Category, items[i].Slot, err)
		}
	}
	return items, nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.wishtree/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".wishtree", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
