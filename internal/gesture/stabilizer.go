package gesture

// Stabilizer suppresses per-frame classification jitter. It keeps a
// rolling window of the last N raw labels and confirms a new label only
// when the window is full, unanimous, and different from the current
// confirmed label. This guarantees a minimum dwell time of N frames
// before any downstream mode transition.
type Stabilizer struct {
	window    int
	history   []Label
	confirmed Label
}

// NewStabilizer creates a Stabilizer requiring window consecutive
// identical labels to confirm a change. Values below 1 are clamped to 1.
func NewStabilizer(window int) *Stabilizer {
	if window < 1 {
		window = 1
	}
	return &Stabilizer{
		window:    window,
		history:   make([]Label, 0, window),
		confirmed: LabelUnknown,
	}
}

// Push records one frame's raw label. It returns the newly confirmed
// label and true exactly when this frame completes a unanimous window
// that differs from the current confirmed label; otherwise the second
// return is false and the first is the unchanged confirmed label.
func (s *Stabilizer) Push(raw Label) (Label, bool) {
	if len(s.history) >= s.window {
		// Shift left by one, dropping the oldest label.
		copy(s.history, s.history[1:])
		s.history = s.history[:s.window-1]
	}
	s.history = append(s.history, raw)

	if len(s.history) < s.window {
		return s.confirmed, false
	}

	for _, l := range s.history {
		if l != raw {
			return s.confirmed, false
		}
	}

	if raw == s.confirmed {
		return s.confirmed, false
	}

	s.confirmed = raw
	return s.confirmed, true
}

// Confirmed returns the current confirmed label. Before the first
// confirmation it is LabelUnknown.
func (s *Stabilizer) Confirmed() Label {
	return s.confirmed
}
