package scene

import (
	"math/rand/v2"
	"sync"

	"github.com/renderix/wishtree/internal/gesture"
)

// Transform is one item's per-frame output to the renderer.
type Transform struct {
	ID       string     `json:"id"`
	Category Category   `json:"category"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"` // x, y, z, w
	Targeted bool       `json:"targeted"`
	Anim     float64    `json:"anim"`
}

// State is a snapshot of the controller for the UI layer.
type State struct {
	Formation Formation     `json:"formation"`
	Mode      Mode          `json:"mode"`
	RawLabel  gesture.Label `json:"raw_label"`
	Targeted  string        `json:"targeted,omitempty"`
}

// Controller holds the scene's two state variables (formation and
// interaction mode), the item pool, the per-category selectors, and the
// interpolator. The detection loop mutates it through Apply; the render
// loop reads it through Advance. A single mutex covers both since the
// loops tick at independent rates.
type Controller struct {
	mu     sync.RWMutex
	pool   *Pool
	interp *Interpolator

	gifts  *Selector
	frames *Selector

	formation Formation
	mode      Mode
	raw       gesture.Label
	targeted  string
	cam       CameraPose
	clock     float64
}

// NewController creates a Controller over the given pool. rng seeds both
// selectors; pass nil outside tests.
func NewController(pool *Pool, cfg Config, rng *rand.Rand) *Controller {
	return &Controller{
		pool:      pool,
		interp:    NewInterpolator(cfg),
		gifts:     NewSelector(len(pool.IDs(CategoryGift)), rng),
		frames:    NewSelector(len(pool.IDs(CategoryFrame)), rng),
		formation: FormationScattered,
		mode:      ModeIdle,
		raw:       gesture.LabelNone,
		cam:       DefaultCameraPose(),
	}
}

// Apply feeds one confirmed gesture label through the transition table.
// Both stabilizer events and manual UI overrides land here; there is no
// second transition path. Labels outside the table (including the
// stabilizer's unknown sentinel) are ignored.
func (c *Controller) Apply(label gesture.Label) {
	tr, ok := transitions[label]
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tr.formation != "" {
		c.formation = tr.formation
	}
	c.setMode(tr.mode)
}

// setMode transitions the interaction mode, selecting a target on entry
// into a pulling mode and clearing it on return to idle. Re-applying the
// current mode keeps the existing selection: confirmed-label events are
// rare, but overrides may repeat.
func (c *Controller) setMode(m Mode) {
	if m == c.mode {
		return
	}
	c.mode = m

	switch m {
	case ModeIdle:
		c.targeted = ""
	case ModePullingGift:
		c.targeted = c.gifts.Pick(c.pool.IDs(CategoryGift))
	case ModePullingFrame:
		c.targeted = c.frames.Pick(c.pool.IDs(CategoryFrame))
	}
}

// SetRawLabel records the unstabilized per-frame label for status
// display. It never drives transitions.
func (c *Controller) SetRawLabel(l gesture.Label) {
	c.mu.Lock()
	c.raw = l
	c.mu.Unlock()
}

// SetCamera updates the viewer pose used for focus targets.
func (c *Controller) SetCamera(cam CameraPose) {
	c.mu.Lock()
	c.cam = cam
	c.mu.Unlock()
}

// State returns a snapshot for the UI layer.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Formation: c.formation,
		Mode:      c.mode,
		RawLabel:  c.raw,
		Targeted:  c.targeted,
	}
}

// Targeted returns the currently focused item id, or "" while idle.
func (c *Controller) Targeted() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.targeted
}

// Advance runs one render tick: every item's transform moves toward its
// current target, and the resulting snapshot is returned for broadcast.
func (c *Controller) Advance(dt float64) []Transform {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock += dt

	out := make([]Transform, 0, len(c.pool.Items()))
	for _, it := range c.pool.Items() {
		targeted := it.ID == c.targeted
		c.interp.Step(it, c.formation, targeted, c.cam, c.clock, dt)

		rot := it.Rotation
		out = append(out, Transform{
			ID:       it.ID,
			Category: it.Category,
			Position: [3]float64{it.Position.X(), it.Position.Y(), it.Position.Z()},
			Rotation: [4]float64{rot.X(), rot.Y(), rot.Z(), rot.W},
			Targeted: targeted,
			Anim:     it.Anim,
		})
	}
	return out
}
