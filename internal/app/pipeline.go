package app

import (
	"log"
	"time"

	"github.com/renderix/wishtree/internal/detector"
	"github.com/renderix/wishtree/internal/gesture"
)

// runDetection is the camera-facing loop. Each tick it reads a frame,
// gates on motion, runs the landmark detector, and pushes the frame's
// label through extract -> classify -> stabilize. Only confirmed changes
// reach the scene controller.
//
// Rate switching follows motion: idle at IdleFPS until pixels move,
// active at ActiveFPS until IdleTimeoutMs of stillness.
func (a *App) runDetection(stop <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode || a.Detector() == nil {
				frame.Close()
				// With nobody in front of the camera the gesture signal
				// is "no hand"; sustained stillness settles the scene
				// back to idle through the normal pipeline.
				a.processHand(nil)
				continue
			}

			hand, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hand: %v", err)
				continue
			}

			a.processHand(hand)
		}
	}
}

// processHand runs one frame's worth of the gesture pipeline. A nil hand
// is the normal no-hand input, not an error.
func (a *App) processHand(hand *detector.HandLandmarks) {
	features, ok := a.extractor.Extract(hand)
	raw := a.classifier.Classify(features, ok)
	a.controller.SetRawLabel(raw)

	if confirmed, changed := a.stabilizer.Push(raw); changed {
		log.Printf("Gesture confirmed: %s", confirmed)
		a.controller.Apply(confirmed)
		a.notifyState()
	}
}

// RawLabel returns the most recent unstabilized classification, for
// status display.
func (a *App) RawLabel() gesture.Label {
	return a.controller.State().RawLabel
}
