// Package app wires the Wishtree pipeline together: camera frames in,
// confirmed gestures into the scene controller, item transforms out.
package app

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/renderix/wishtree/internal/capture"
	"github.com/renderix/wishtree/internal/detector"
	"github.com/renderix/wishtree/internal/gesture"
	"github.com/renderix/wishtree/internal/scene"
	"github.com/renderix/wishtree/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to idle.
	IdleTimeoutMs = 2000
	// RenderFPS is the rate of the transform/interpolation loop. It is
	// independent of the camera rate by design.
	RenderFPS = 30
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	Mirror       bool
	MotionThresh float64

	Gesture gesture.Config
	Scene   scene.Config

	// GiftIDs and FrameIDs are the stable item identifiers, usually
	// loaded from the store at startup.
	GiftIDs  []string
	FrameIDs []string

	// Rand seeds item selection; nil outside tests.
	Rand *rand.Rand
}

// App owns the detection and render loops and the scene controller they
// share.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	extractor  *gesture.Extractor
	classifier *gesture.Classifier
	stabilizer *gesture.Stabilizer
	controller *scene.Controller

	onTransforms func([]scene.Transform)
	onState      func(scene.State)

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	pool := scene.NewPool(config.GiftIDs, config.FrameIDs)

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID, config.Mirror),
		motion:     capture.NewMotionDetector(motionThreshold),
		extractor:  gesture.NewExtractor(config.Gesture),
		classifier: gesture.NewClassifier(),
		stabilizer: gesture.NewStabilizer(config.Gesture.Window),
		controller: scene.NewController(pool, config.Scene, config.Rand),
	}

	// Try MediaPipe first, fall back to the mock detector so the scene
	// still runs (override-driven) without a working camera stack.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables camera-driven gesture control. Manual
// overrides keep working either way.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture control is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera; tests install a mock.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnTransforms registers the render-loop sink for per-tick transforms.
func (a *App) OnTransforms(fn func([]scene.Transform)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onTransforms = fn
}

// OnState registers a sink notified after every detection tick with the
// current scene state, for status indicators.
func (a *App) OnState(fn func(scene.State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onState = fn
}

// InjectGesture feeds a manual override label through the exact same
// transition table as camera-sourced events. The stabilizer is bypassed;
// the caller asserts the gesture, so there is nothing to debounce.
func (a *App) InjectGesture(label gesture.Label) error {
	if !label.Valid() {
		return fmt.Errorf("unknown gesture label %q", label)
	}
	a.controller.Apply(label)
	a.notifyState()
	return nil
}

// Scene returns the scene controller.
func (a *App) Scene() *scene.Controller {
	return a.controller
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Start opens the camera and launches the detection and render loops.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(2)
	go a.runDetection(a.stopCh)
	go a.runRender(a.stopCh)

	log.Println("Pipeline started")
	return nil
}

// Stop halts both loops and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

func (a *App) notifyState() {
	a.mu.RLock()
	fn := a.onState
	a.mu.RUnlock()
	if fn != nil {
		fn(a.controller.State())
	}
}
