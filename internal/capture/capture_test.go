package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(value uint8) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(value), float64(value), float64(value), 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3,
	)
	return &mat
}

func TestMockCamera(t *testing.T) {
	t.Run("read before open", func(t *testing.T) {
		c := NewMockCamera(nil, false)
		if _, err := c.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
			t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
		}
	})

	t.Run("plays frames in order then runs out", func(t *testing.T) {
		f1, f2 := solidFrame(10), solidFrame(200)
		defer f1.Close()
		defer f2.Close()

		c := NewMockCamera([]*gocv.Mat{f1, f2}, false)
		c.Open()
		defer c.Close()

		for i := 0; i < 2; i++ {
			frame, err := c.ReadFrame()
			if err != nil {
				t.Fatalf("read %d error = %v", i, err)
			}
			frame.Close()
		}
		if _, err := c.ReadFrame(); err == nil {
			t.Error("expected error after last frame without loop")
		}
	})

	t.Run("loops when configured", func(t *testing.T) {
		f := solidFrame(50)
		defer f.Close()

		c := NewMockCamera([]*gocv.Mat{f}, true)
		c.Open()
		defer c.Close()

		for i := 0; i < 5; i++ {
			frame, err := c.ReadFrame()
			if err != nil {
				t.Fatalf("looped read %d error = %v", i, err)
			}
			frame.Close()
		}
	})

	t.Run("fps tracks SetFPS", func(t *testing.T) {
		c := NewMockCamera(nil, false)
		c.SetFPS(15)
		if got := c.FPS(); got != 15 {
			t.Errorf("FPS() = %d, want 15", got)
		}
	})
}

func TestMotionDetector(t *testing.T) {
	t.Run("first frame is baseline", func(t *testing.T) {
		m := NewMotionDetector(1.0)
		defer m.Close()

		f := solidFrame(100)
		defer f.Close()

		if detected, _ := m.Detect(f); detected {
			t.Error("motion detected on baseline frame")
		}
	})

	t.Run("identical frames are still", func(t *testing.T) {
		m := NewMotionDetector(1.0)
		defer m.Close()

		f1, f2 := solidFrame(100), solidFrame(100)
		defer f1.Close()
		defer f2.Close()

		m.Detect(f1)
		if detected, pct := m.Detect(f2); detected {
			t.Errorf("motion on identical frame (%.2f%%)", pct)
		}
	})

	t.Run("large change trips the gate", func(t *testing.T) {
		m := NewMotionDetector(1.0)
		defer m.Close()

		dark, bright := solidFrame(10), solidFrame(240)
		defer dark.Close()
		defer bright.Close()

		m.Detect(dark)
		if detected, pct := m.Detect(bright); !detected {
			t.Errorf("no motion on full-frame change (%.2f%%)", pct)
		}
	})

	t.Run("reset clears the baseline", func(t *testing.T) {
		m := NewMotionDetector(1.0)
		defer m.Close()

		dark, bright := solidFrame(10), solidFrame(240)
		defer dark.Close()
		defer bright.Close()

		m.Detect(dark)
		m.Reset()
		if detected, _ := m.Detect(bright); detected {
			t.Error("motion detected on post-reset baseline frame")
		}
	})

	t.Run("nil and empty frames are still", func(t *testing.T) {
		m := NewMotionDetector(1.0)
		defer m.Close()

		if detected, _ := m.Detect(nil); detected {
			t.Error("motion on nil frame")
		}
		empty := gocv.NewMat()
		defer empty.Close()
		if detected, _ := m.Detect(&empty); detected {
			t.Error("motion on empty frame")
		}
	})
}
