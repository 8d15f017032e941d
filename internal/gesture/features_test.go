package gesture

import (
	"testing"

	"github.com/renderix/wishtree/internal/detector"
)

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	t.Run("nil hand is absent", func(t *testing.T) {
		if _, ok := e.Extract(nil); ok {
			t.Error("Extract(nil) ok = true, want false")
		}
	})

	t.Run("open palm extends all five digits", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()
		f, ok := e.Extract(&hand)
		if !ok {
			t.Fatal("Extract() ok = false")
		}
		if !f.ThumbExtended || !f.IndexExtended || !f.MiddleExtended || !f.RingExtended || !f.PinkyExtended {
			t.Errorf("open palm features = %+v, want all extended", f)
		}
		if f.ExtendedCount != 5 {
			t.Errorf("ExtendedCount = %d, want 5", f.ExtendedCount)
		}
		if f.Pinching {
			t.Error("open palm reads as pinching")
		}
	})

	t.Run("fist extends nothing", func(t *testing.T) {
		hand := detector.FistLandmarks()
		f, ok := e.Extract(&hand)
		if !ok {
			t.Fatal("Extract() ok = false")
		}
		if f.ExtendedCount != 0 {
			t.Errorf("fist ExtendedCount = %d, want 0 (features %+v)", f.ExtendedCount, f)
		}
		if f.Pinching {
			t.Errorf("fist reads as pinching (pinch distance %f)", f.PinchDistance)
		}
	})

	t.Run("point extends index alone", func(t *testing.T) {
		hand := detector.PointLandmarks()
		f, _ := e.Extract(&hand)
		if !f.IndexExtended {
			t.Error("point index not extended")
		}
		if f.MiddleExtended || f.RingExtended || f.PinkyExtended || f.ThumbExtended {
			t.Errorf("point extends extra digits: %+v", f)
		}
	})

	t.Run("pinch distance is thumb tip to index tip", func(t *testing.T) {
		hand := detector.PinchLandmarks()
		f, _ := e.Extract(&hand)

		want := detector.Dist(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
		if f.PinchDistance != want {
			t.Errorf("PinchDistance = %f, want %f", f.PinchDistance, want)
		}
		if !f.Pinching {
			t.Errorf("pinch pose not pinching (distance %f)", f.PinchDistance)
		}
	})

	t.Run("extraction is pure", func(t *testing.T) {
		hand := detector.OpenPalmLandmarks()
		before := hand
		e.Extract(&hand)
		if hand != before {
			t.Error("Extract mutated the landmark set")
		}
		f1, _ := e.Extract(&hand)
		f2, _ := e.Extract(&hand)
		if f1 != f2 {
			t.Errorf("Extract not deterministic: %+v vs %+v", f1, f2)
		}
	})

	t.Run("extension scales with hand size", func(t *testing.T) {
		// Doubling every coordinate about the wrist must not change any
		// feature: the rules are ratio-based.
		hand := detector.PointLandmarks()
		small, _ := e.Extract(&hand)

		wrist := hand.Points[detector.Wrist]
		big := hand
		for i := range big.Points {
			big.Points[i].X = wrist.X + (big.Points[i].X-wrist.X)*2
			big.Points[i].Y = wrist.Y + (big.Points[i].Y-wrist.Y)*2
			big.Points[i].Z = wrist.Z + (big.Points[i].Z-wrist.Z)*2
		}
		scaled, _ := e.Extract(&big)

		if small.IndexExtended != scaled.IndexExtended ||
			small.MiddleExtended != scaled.MiddleExtended ||
			small.RingExtended != scaled.RingExtended ||
			small.PinkyExtended != scaled.PinkyExtended {
			t.Errorf("finger extension changed with scale: %+v vs %+v", small, scaled)
		}
	})
}
