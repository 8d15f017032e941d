package gesture

// Label is one of the closed set of gesture readings for a frame.
type Label string

const (
	// LabelNone means no hand was detected this frame.
	LabelNone Label = "none"
	// LabelFist is a closed hand (at most one digit extended).
	LabelFist Label = "fist"
	// LabelPinch is thumb tip and index tip touching.
	LabelPinch Label = "pinch"
	// LabelPoint is the index finger extended alone.
	LabelPoint Label = "point"
	// LabelOpen is an open palm (four or more digits extended).
	LabelOpen Label = "open"
	// LabelNeutral is any hand shape matching none of the above.
	LabelNeutral Label = "neutral"
	// LabelUnknown is the stabilizer's pre-confirmation sentinel. It is
	// never produced by classification.
	LabelUnknown Label = "unknown"
)

// Valid reports whether l is a label the classifier can produce.
func (l Label) Valid() bool {
	switch l {
	case LabelNone, LabelFist, LabelPinch, LabelPoint, LabelOpen, LabelNeutral:
		return true
	}
	return false
}

// rule is one entry of the classifier's priority table.
type rule struct {
	label Label
	match func(Features) bool
}

// Classifier maps a feature set to a gesture label through an ordered
// rule table; the first matching rule wins. The order is a design
// decision: pinch and point are the most shape-specific readings and
// must precede the coarser fist/open counts, otherwise a pinch with
// stray extended fingers reads as open and a loose fist as pinch.
type Classifier struct {
	rules []rule
}

// NewClassifier creates a Classifier with the fixed priority table.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{LabelPinch, func(f Features) bool {
				return f.Pinching
			}},
			{LabelPoint, func(f Features) bool {
				return f.IndexExtended && !f.MiddleExtended && !f.RingExtended && !f.PinkyExtended
			}},
			{LabelFist, func(f Features) bool {
				return f.ExtendedCount <= 1
			}},
			{LabelOpen, func(f Features) bool {
				return f.ExtendedCount >= 4
			}},
		},
	}
}

// Classify returns the label for one frame's features. ok=false (no hand
// detected) bypasses the table and yields LabelNone.
func (c *Classifier) Classify(f Features, ok bool) Label {
	if !ok {
		return LabelNone
	}

	for _, r := range c.rules {
		if r.match(f) {
			return r.label
		}
	}
	return LabelNeutral
}
