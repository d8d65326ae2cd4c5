package flexmessage

import (
	"math"
)

// DragState is the phase of a drag gesture
type DragState string

const (
	DragStateIdle          DragState = "idle"
	DragStateDragging      DragState = "dragging"
	DragStateDroppingOnGap DragState = "dropping_on_gap"
	DragStateDroppingOnBox DragState = "dropping_on_box"
)

// GapTarget addresses the position between two siblings.
// An empty ParentID means the section's top level.
type GapTarget struct {
	ParentID string `json:"parent_id,omitempty"`
	Index    int    `json:"index"`
}

// DragSnapshot is a read-only view of the current gesture
type DragSnapshot struct {
	State    DragState  `json:"state"`
	SourceID string     `json:"source_id,omitempty"`
	Gap      *GapTarget `json:"gap,omitempty"`
	BoxID    string     `json:"box_id,omitempty"`
}

// AcceptFunc lets the owner veto a drop of el under parentID ("" = top level)
type AcceptFunc func(parentID string, el *Element) bool

// DragController is the drag-and-drop state machine:
//
//	Idle -> Dragging -> (DroppingOnGap | DroppingOnBox) -> Idle
//
// It never owns elements; it only remembers ids and hands back rebuilt trees.
type DragController struct {
	expansion *ExpansionSet

	state        DragState
	sourceID     string
	gap          GapTarget
	boxID        string
	snapshot     map[string]bool
	autoExpanded map[string]bool
}

// NewDragController creates an idle controller driving the given expansion set
func NewDragController(expansion *ExpansionSet) *DragController {
	return &DragController{
		expansion: expansion,
		state:     DragStateIdle,
	}
}

// State returns the current phase
func (d *DragController) State() DragState {
	return d.state
}

// Active reports whether a gesture is in progress
func (d *DragController) Active() bool {
	return d.state != DragStateIdle
}

// Snapshot describes the gesture for display
func (d *DragController) Snapshot() DragSnapshot {
	snap := DragSnapshot{State: d.state, SourceID: d.sourceID}
	switch d.state {
	case DragStateDroppingOnGap:
		gap := d.gap
		snap.Gap = &gap
	case DragStateDroppingOnBox:
		snap.BoxID = d.boxID
	}
	return snap
}

// Start picks up sourceID. The expansion state is saved and every box of the
// tree collapsed until the gesture ends. Unknown ids are ignored.
func (d *DragController) Start(tree Tree, sourceID string) bool {
	if !Contains(tree, sourceID) {
		return false
	}
	if d.Active() {
		d.End()
	}

	d.snapshot = d.expansion.Snapshot()
	d.autoExpanded = make(map[string]bool)
	d.expansion.Collapse(BoxIDs(tree))

	d.state = DragStateDragging
	d.sourceID = sourceID
	return true
}

// OverGap marks a sibling gap as the pending target
func (d *DragController) OverGap(parentID string, index int) bool {
	if !d.Active() {
		return false
	}
	d.state = DragStateDroppingOnGap
	d.gap = GapTarget{ParentID: parentID, Index: index}
	d.boxID = ""
	return true
}

// OverBox marks a box body as the pending target and expands it
func (d *DragController) OverBox(boxID string) bool {
	if !d.Active() || boxID == d.sourceID {
		return false
	}
	d.state = DragStateDroppingOnBox
	d.boxID = boxID
	d.gap = GapTarget{}
	if !d.expansion.IsExpanded(boxID) {
		d.autoExpanded[boxID] = true
		d.expansion.Set(boxID, true)
	}
	return true
}

// Drop completes the gesture against tree. It returns the rebuilt tree and
// whether the element moved; a rejected drop returns tree unchanged. The
// controller is idle afterwards in every case.
func (d *DragController) Drop(tree Tree, accept AcceptFunc) (Tree, bool) {
	if !d.Active() {
		return tree, false
	}

	var (
		out   Tree
		moved bool
	)
	switch d.state {
	case DragStateDroppingOnGap:
		out, moved = d.dropOnGap(tree, accept)
	case DragStateDroppingOnBox:
		out, moved = d.dropOnBox(tree, accept)
	default:
		out = tree
	}

	extra := map[string]bool{}
	if moved && d.state == DragStateDroppingOnBox {
		extra[d.boxID] = true
	}
	d.finish(extra)
	return out, moved
}

// End cancels the gesture and restores the expansion state from drag start,
// plus any box auto-expanded while hovering.
func (d *DragController) End() {
	if !d.Active() {
		return
	}
	d.finish(nil)
}

func (d *DragController) dropOnGap(tree Tree, accept AcceptFunc) (Tree, bool) {
	parentID := d.gap.ParentID
	if parentID != "" {
		if parentID == d.sourceID || IsDescendant(tree, d.sourceID, parentID) {
			return tree, false
		}
		parent, ok := Find(tree, parentID)
		if !ok || !parent.IsBox() {
			return tree, false
		}
	}

	source, ok := Find(tree, d.sourceID)
	if !ok {
		return tree, false
	}
	if accept != nil && !accept(parentID, source) {
		return tree, false
	}

	detached, el, _ := Detach(tree, d.sourceID)
	if parentID == "" {
		return InsertAt(detached, el, d.gap.Index), true
	}
	return InsertIntoBox(detached, parentID, el, d.gap.Index), true
}

func (d *DragController) dropOnBox(tree Tree, accept AcceptFunc) (Tree, bool) {
	if d.boxID == d.sourceID || IsDescendant(tree, d.sourceID, d.boxID) {
		return tree, false
	}
	box, ok := Find(tree, d.boxID)
	if !ok || !box.IsBox() {
		return tree, false
	}
	source, ok := Find(tree, d.sourceID)
	if !ok {
		return tree, false
	}
	if accept != nil && !accept(d.boxID, source) {
		return tree, false
	}

	detached, el, _ := Detach(tree, d.sourceID)
	return InsertIntoBox(detached, d.boxID, el, math.MaxInt), true
}

func (d *DragController) finish(extra map[string]bool) {
	d.expansion.Restore(d.snapshot, d.autoExpanded, extra)

	d.state = DragStateIdle
	d.sourceID = ""
	d.gap = GapTarget{}
	d.boxID = ""
	d.snapshot = nil
	d.autoExpanded = nil
}
