package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Category distinguishes the two interactive item kinds.
type Category string

const (
	CategoryGift  Category = "gift"
	CategoryFrame Category = "frame"
)

// Item is one member of the fixed interactive pool. Identity, category,
// slot, and rest positions are set once at construction; only the
// transform and animation progress change at runtime.
type Item struct {
	ID       string
	Category Category
	Slot     int

	// Phase offsets the per-item oscillation so items never bob in
	// lock-step.
	Phase float64

	RestScattered mgl64.Vec3
	RestTree      mgl64.Vec3

	Position mgl64.Vec3
	Rotation mgl64.Quat

	// Anim is the secondary animation progress in [0,1]: gift lid open,
	// frame face tilt.
	Anim float64
}

// Rest returns the item's resting position for the given formation.
func (it *Item) Rest(f Formation) mgl64.Vec3 {
	if f == FormationTree {
		return it.RestTree
	}
	return it.RestScattered
}

// Pool is the fixed set of interactive items, built once at startup.
type Pool struct {
	items []*Item
	byID  map[string]*Item
	ids   map[Category][]string
}

// NewPool builds the pool from stable identifiers, laying gifts and
// frames out in both formations. Items start at their scattered rest
// position facing the viewer axis.
func NewPool(giftIDs, frameIDs []string) *Pool {
	p := &Pool{
		byID: make(map[string]*Item, len(giftIDs)+len(frameIDs)),
		ids:  make(map[Category][]string, 2),
	}

	p.addCategory(CategoryGift, giftIDs)
	p.addCategory(CategoryFrame, frameIDs)

	return p
}

func (p *Pool) addCategory(cat Category, ids []string) {
	n := len(ids)
	for i, id := range ids {
		it := &Item{
			ID:            id,
			Category:      cat,
			Slot:          i,
			Phase:         goldenAngle * float64(i),
			RestScattered: scatterPosition(cat, i, n),
			RestTree:      treePosition(cat, i, n),
			Rotation:      mgl64.QuatIdent(),
		}
		it.Position = it.RestScattered

		p.items = append(p.items, it)
		p.byID[id] = it
		p.ids[cat] = append(p.ids[cat], id)
	}
}

// Items returns every item in slot order (gifts first, then frames).
func (p *Pool) Items() []*Item {
	return p.items
}

// IDs returns the stable identifiers of one category.
func (p *Pool) IDs(cat Category) []string {
	return p.ids[cat]
}

// Get returns the item with the given id, or nil.
func (p *Pool) Get(id string) *Item {
	return p.byID[id]
}

// Layout constants. The renderer owns appearance; these only place rest
// positions in world units around the tree origin.
const (
	goldenAngle = 2.39996322972865332 // radians

	scatterRadius = 3.0
	scatterHeight = 2.4

	treeBaseRadius = 1.4
	treeHeight     = 2.8
	frameRingLift  = 0.4
)

// scatterPosition places item i of n on a loose golden-angle cylinder so
// the scattered formation fills the volume without a visible grid.
func scatterPosition(cat Category, i, n int) mgl64.Vec3 {
	if n == 0 {
		return mgl64.Vec3{}
	}
	angle := goldenAngle * float64(i)
	r := scatterRadius * math.Sqrt(float64(i+1)/float64(n))
	y := scatterHeight * (float64(i)/float64(n) - 0.5)
	if cat == CategoryFrame {
		// Frames hang on an outer band so they stay readable.
		r += 0.6
	}
	return mgl64.Vec3{r * math.Cos(angle), y, r * math.Sin(angle)}
}

// treePosition winds item i of n along a conical helix: wide at the
// base, narrowing toward the top.
func treePosition(cat Category, i, n int) mgl64.Vec3 {
	if n == 0 {
		return mgl64.Vec3{}
	}
	t := float64(i) / float64(n)
	angle := goldenAngle * float64(i)
	r := treeBaseRadius * (1 - 0.8*t)
	y := treeHeight * (t - 0.5)
	if cat == CategoryFrame {
		y += frameRingLift
	}
	return mgl64.Vec3{r * math.Cos(angle), y, r * math.Sin(angle)}
}
