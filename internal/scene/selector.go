package scene

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Selector picks items pseudo-randomly while avoiding recent repeats.
// It keeps a bounded, insertion-ordered history of chosen identifiers;
// candidates in the history are excluded unless that would leave nothing
// to choose, in which case the full candidate set is used so selection
// never blocks.
type Selector struct {
	rng      *rand.Rand
	capacity int
	history  []string
}

// NewSelector creates a Selector for a category of poolSize items.
// History capacity is half the pool size, minimum one, so no identifier
// repeats until at least half the pool has been shown (pool permitting).
// A nil rng gets a time-seeded source; tests inject a fixed seed.
func NewSelector(poolSize int, rng *rand.Rand) *Selector {
	capacity := poolSize / 2
	if capacity < 1 {
		capacity = 1
	}
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return &Selector{
		rng:      rng,
		capacity: capacity,
		history:  make([]string, 0, capacity),
	}
}

// Pick chooses one identifier from candidates uniformly at random,
// excluding recent picks, and records the choice. An empty candidate
// set returns "".
func (s *Selector) Pick(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	fresh := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if !slices.Contains(s.history, id) {
			fresh = append(fresh, id)
		}
	}
	// Small pool or saturated history: fall back to everything rather
	// than refusing to select.
	if len(fresh) == 0 {
		fresh = candidates
	}

	chosen := fresh[s.rng.IntN(len(fresh))]

	if len(s.history) >= s.capacity {
		copy(s.history, s.history[1:])
		s.history = s.history[:s.capacity-1]
	}
	s.history = append(s.history, chosen)

	return chosen
}

// History returns a copy of the recent-pick queue, oldest first.
func (s *Selector) History() []string {
	return slices.Clone(s.history)
}
