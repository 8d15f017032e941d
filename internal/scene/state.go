// Package scene owns the interactive scene state: the formation/mode
// state machine driven by confirmed gesture events, the item pool, the
// history-aware item selector, and the per-frame transform interpolator.
package scene

import "github.com/renderix/wishtree/internal/gesture"

// Formation is the coarse visual layout mode of the scene.
type Formation string

const (
	// FormationScattered spreads items loosely through the volume.
	FormationScattered Formation = "scattered"
	// FormationTree assembles items into the tree shape.
	FormationTree Formation = "tree"
)

// Mode says which item category, if any, the user is currently pulling
// into focus.
type Mode string

const (
	ModeIdle         Mode = "idle"
	ModePullingFrame Mode = "pulling_frame"
	ModePullingGift  Mode = "pulling_gift"
)

// transition is one row of the gesture-event table. An empty formation
// means "leave the formation unchanged".
type transition struct {
	formation Formation
	mode      Mode
}

// transitions maps every confirmed gesture label to its outcome. The
// table is total over the label set; both camera-sourced events and
// manual overrides resolve through it, never through a parallel path.
var transitions = map[gesture.Label]transition{
	gesture.LabelFist:    {formation: FormationTree, mode: ModeIdle},
	gesture.LabelOpen:    {formation: FormationScattered, mode: ModeIdle},
	gesture.LabelPinch:   {mode: ModePullingFrame},
	gesture.LabelPoint:   {mode: ModePullingGift},
	gesture.LabelNeutral: {mode: ModeIdle},
	gesture.LabelNone:    {mode: ModeIdle},
}
