package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to script the detection results frame by frame.
type MockDetector struct {
	hand *HandLandmarks
	err  error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHand sets the hand that will be returned by Detect. Pass nil to
// simulate frames with no hand present.
func (m *MockDetector) SetHand(hand *HandLandmarks) {
	m.hand = hand
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hand or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hand, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic hand poses for tests. Coordinates are normalized image space
// with the wrist low in the frame and fingers reaching up (Y decreases
// toward the top of the image). Only the joints the feature rules read
// (wrist, MCPs, tips) are placed precisely; intermediate joints are
// interpolated for shape.

// basePose returns a hand skeleton with the wrist and base joints placed
// and every finger curled into the palm.
func basePose() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.90}

	lm.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.86}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.82}
	lm.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.76}
	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.75}
	lm.Points[RingMCP] = Point3D{X: 0.54, Y: 0.76}
	lm.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.78}

	// Thumb tucked across the palm toward the pinky side.
	placeThumb(&lm, Point3D{X: 0.56, Y: 0.84})

	curlFinger(&lm, IndexMCP, Point3D{X: 0.47, Y: 0.79, Z: -0.03})
	curlFinger(&lm, MiddleMCP, Point3D{X: 0.50, Y: 0.78, Z: -0.03})
	curlFinger(&lm, RingMCP, Point3D{X: 0.53, Y: 0.79, Z: -0.03})
	curlFinger(&lm, PinkyMCP, Point3D{X: 0.56, Y: 0.80, Z: -0.03})

	return lm
}

// placeThumb sets the thumb IP and tip, interpolating the IP joint.
func placeThumb(lm *HandLandmarks, tip Point3D) {
	mcp := lm.Points[ThumbMCP]
	lm.Points[ThumbIP] = lerpPoint(mcp, tip, 0.5)
	lm.Points[ThumbTip] = tip
}

// curlFinger folds a finger so its tip sits near the palm. mcp is the
// finger's MCP index; PIP/DIP/tip follow in landmark order.
func curlFinger(lm *HandLandmarks, mcp int, tip Point3D) {
	base := lm.Points[mcp]
	lm.Points[mcp+1] = lerpPoint(base, tip, 0.6)
	lm.Points[mcp+2] = lerpPoint(base, tip, 0.9)
	lm.Points[mcp+3] = tip
}

// extendFinger straightens a finger from its MCP out to tip.
func extendFinger(lm *HandLandmarks, mcp int, tip Point3D) {
	base := lm.Points[mcp]
	lm.Points[mcp+1] = lerpPoint(base, tip, 0.4)
	lm.Points[mcp+2] = lerpPoint(base, tip, 0.7)
	lm.Points[mcp+3] = tip
}

func lerpPoint(a, b Point3D, t float64) Point3D {
	return Point3D{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// FistLandmarks returns a closed fist: every finger curled, thumb tucked
// away from the index tip so the pose cannot read as a pinch.
func FistLandmarks() HandLandmarks {
	return basePose()
}

// OpenPalmLandmarks returns an open palm with all five digits extended.
func OpenPalmLandmarks() HandLandmarks {
	lm := basePose()

	placeThumb(&lm, Point3D{X: 0.30, Y: 0.72})
	extendFinger(&lm, IndexMCP, Point3D{X: 0.42, Y: 0.52})
	extendFinger(&lm, MiddleMCP, Point3D{X: 0.50, Y: 0.50})
	extendFinger(&lm, RingMCP, Point3D{X: 0.56, Y: 0.52})
	extendFinger(&lm, PinkyMCP, Point3D{X: 0.62, Y: 0.58})

	return lm
}

// PointLandmarks returns a pointing hand: index extended, everything
// else curled.
func PointLandmarks() HandLandmarks {
	lm := basePose()

	extendFinger(&lm, IndexMCP, Point3D{X: 0.42, Y: 0.52})

	return lm
}

// PinchLandmarks returns a pinch: thumb tip and index tip touching, the
// remaining fingers extended. The stray extended fingers are deliberate;
// pinch must win over the open-palm reading.
func PinchLandmarks() HandLandmarks {
	lm := basePose()

	extendFinger(&lm, IndexMCP, Point3D{X: 0.42, Y: 0.52})
	placeThumb(&lm, Point3D{X: 0.44, Y: 0.56})
	extendFinger(&lm, MiddleMCP, Point3D{X: 0.50, Y: 0.50})
	extendFinger(&lm, RingMCP, Point3D{X: 0.56, Y: 0.52})
	extendFinger(&lm, PinkyMCP, Point3D{X: 0.62, Y: 0.58})

	return lm
}

// NeutralLandmarks returns a half-open hand that matches none of the
// specific shapes: index and middle extended, ring and pinky curled.
func NeutralLandmarks() HandLandmarks {
	lm := basePose()

	extendFinger(&lm, IndexMCP, Point3D{X: 0.42, Y: 0.52})
	extendFinger(&lm, MiddleMCP, Point3D{X: 0.50, Y: 0.50})

	return lm
}
