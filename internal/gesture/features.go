// Package gesture turns raw hand landmarks into stable, discrete gesture
// labels: per-frame feature extraction, rule-based classification, and
// temporal stabilization over a rolling window.
package gesture

import "github.com/renderix/wishtree/internal/detector"

// Config holds the tunable constants of the gesture pipeline. No other
// behavior depends on their exact values.
type Config struct {
	// ExtensionMultiplier scales the tip-vs-base wrist distance ratio
	// above which a finger counts as extended.
	ExtensionMultiplier float64

	// ThumbDistance is the thumb-tip-to-pinky-MCP distance above which
	// the thumb counts as extended. The thumb gets its own rule because
	// its kinematics differ from the other four digits.
	ThumbDistance float64

	// PinchDistance is the thumb-tip-to-index-tip distance below which
	// the hand counts as pinching. Kept tight so a loosely closed fist
	// does not read as a pinch.
	PinchDistance float64

	// Window is the number of consecutive identical raw labels required
	// before the stabilizer confirms a gesture change.
	Window int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ExtensionMultiplier: 1.2,
		ThumbDistance:       0.2,
		PinchDistance:       0.08,
		Window:              4,
	}
}

// Features is the per-frame signal set derived from one landmark set.
// It is ephemeral: recomputed every frame, never stored.
type Features struct {
	ThumbExtended  bool
	IndexExtended  bool
	MiddleExtended bool
	RingExtended   bool
	PinkyExtended  bool
	ExtendedCount  int
	PinchDistance  float64
	Pinching       bool
}

// Extractor derives Features from hand landmarks. It holds only
// configuration; extraction is a pure function of the current frame.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an Extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract computes the feature set for one frame. A nil hand is the
// normal no-hand-this-frame input and yields ok=false.
func (e *Extractor) Extract(hand *detector.HandLandmarks) (Features, bool) {
	if hand == nil {
		return Features{}, false
	}

	wrist := hand.Points[detector.Wrist]

	extended := func(tip, base int) bool {
		tipDist := detector.Dist(hand.Points[tip], wrist)
		baseDist := detector.Dist(hand.Points[base], wrist)
		return tipDist > baseDist*e.cfg.ExtensionMultiplier
	}

	f := Features{
		IndexExtended:  extended(detector.IndexTip, detector.IndexMCP),
		MiddleExtended: extended(detector.MiddleTip, detector.MiddleMCP),
		RingExtended:   extended(detector.RingTip, detector.RingMCP),
		PinkyExtended:  extended(detector.PinkyTip, detector.PinkyMCP),
	}

	f.ThumbExtended = detector.Dist(hand.Points[detector.ThumbTip], hand.Points[detector.PinkyMCP]) > e.cfg.ThumbDistance

	for _, ext := range []bool{f.ThumbExtended, f.IndexExtended, f.MiddleExtended, f.RingExtended, f.PinkyExtended} {
		if ext {
			f.ExtendedCount++
		}
	}

	f.PinchDistance = detector.Dist(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
	f.Pinching = f.PinchDistance < e.cfg.PinchDistance

	return f, true
}
