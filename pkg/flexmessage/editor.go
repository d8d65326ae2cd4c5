package flexmessage

import (
	"fmt"
)

// Editor is the section container: four section trees, the active section,
// the id generator and the tree-view interaction state (expansion, drag).
//
// Editor is not safe for concurrent use; callers serialize events.
type Editor struct {
	sections  Sections
	active    SectionName
	ids       IDGenerator
	expansion *ExpansionSet
	drag      *DragController
	previewer *Previewer
}

// NewEditor creates an editor with four empty sections and Body active
func NewEditor(ids IDGenerator) *Editor {
	expansion := NewExpansionSet()
	return &Editor{
		sections:  NewSections(),
		active:    SectionBody,
		ids:       ids,
		expansion: expansion,
		drag:      NewDragController(expansion),
		previewer: NewPreviewer(),
	}
}

// NewEditorFromSections creates an editor over existing content. All boxes
// start expanded.
func NewEditorFromSections(ids IDGenerator, sections Sections) (*Editor, error) {
	if err := sections.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sections: %w", err)
	}
	e := NewEditor(ids)
	for _, name := range AllSections {
		if tree, ok := sections[name]; ok && tree != nil {
			e.sections[name] = tree
		}
		for _, id := range BoxIDs(e.sections[name]) {
			e.expansion.Set(id, true)
		}
	}
	return e, nil
}

// Active returns the section subsequent operations target
func (e *Editor) Active() SectionName {
	return e.active
}

// SetActive switches the active section. A gesture in progress is cancelled.
func (e *Editor) SetActive(name SectionName) bool {
	if !name.IsValid() {
		return false
	}
	if name != e.active {
		e.drag.End()
	}
	e.active = name
	return true
}

// Tree returns the active section's tree
func (e *Editor) Tree() Tree {
	return e.sections[e.active]
}

// Section returns the tree of any section
func (e *Editor) Section(name SectionName) Tree {
	return e.sections[name]
}

// Sections returns the current section trees. The trees are shared and must
// not be mutated.
func (e *Editor) Sections() Sections {
	out := make(Sections, len(e.sections))
	for name, tree := range e.sections {
		out[name] = tree
	}
	return out
}

// Expanded returns the ids of expanded boxes
func (e *Editor) Expanded() []string {
	return e.expansion.IDs()
}

// IsExpanded reports whether a box is expanded
func (e *Editor) IsExpanded(id string) bool {
	return e.expansion.IsExpanded(id)
}

// Drag returns the current gesture
func (e *Editor) Drag() DragSnapshot {
	return e.drag.Snapshot()
}

// Add appends a new element of kind to the active section. Kinds the section
// does not accept are rejected without mutation.
func (e *Editor) Add(kind ElementKind) (*Element, bool) {
	if !kind.IsValid() || !CanAdd(e.active, kind) {
		return nil, false
	}
	el := NewElement(e.ids, kind)
	e.set(InsertAt(e.Tree(), el, len(e.Tree())))
	if el.IsBox() {
		e.expansion.Set(el.ID, true)
	}
	return el, true
}

// AddToBox appends a new element of kind to a box of the active section
func (e *Editor) AddToBox(boxID string, kind ElementKind) (*Element, bool) {
	if !kind.IsValid() {
		return nil, false
	}
	box, ok := Find(e.Tree(), boxID)
	if !ok || !box.IsBox() {
		return nil, false
	}
	el := NewElement(e.ids, kind)
	e.set(InsertIntoBox(e.Tree(), boxID, el, len(box.Children)))
	e.expansion.Set(boxID, true)
	if el.IsBox() {
		e.expansion.Set(el.ID, true)
	}
	return el, true
}

// Remove deletes an element (and its subtree) from the active section
func (e *Editor) Remove(id string) bool {
	changed := e.apply(Remove(e.Tree(), id))
	if changed {
		e.expansion.Prune(e.sections.Trees()...)
	}
	return changed
}

// Update patches an element of the active section
func (e *Editor) Update(id string, patch Patch) bool {
	return e.apply(Update(e.Tree(), id, patch))
}

// ToggleDirection flips a box of the active section
func (e *Editor) ToggleDirection(boxID string) bool {
	return e.apply(ToggleDirection(e.Tree(), boxID))
}

// Move reorders an element among its siblings in the active section
func (e *Editor) Move(id string, delta int) bool {
	return e.apply(Move(e.Tree(), id, delta))
}

// ToggleExpanded flips a box's expansion. It returns the new state and whether
// the id named a box of the active section.
func (e *Editor) ToggleExpanded(boxID string) (bool, bool) {
	box, ok := Find(e.Tree(), boxID)
	if !ok || !box.IsBox() {
		return false, false
	}
	return e.expansion.Toggle(boxID), true
}

// UpdateAnywhere patches an element in whichever section holds it. Used by
// completions that captured an id before the active section may have changed.
func (e *Editor) UpdateAnywhere(id string, patch Patch) bool {
	for _, name := range AllSections {
		before := e.sections[name]
		after := Update(before, id, patch)
		if treeChanged(before, after) {
			e.sections[name] = after
			return true
		}
	}
	return false
}

// Locate finds an element in any section
func (e *Editor) Locate(id string) (*Element, SectionName, bool) {
	for _, name := range AllSections {
		if el, ok := Find(e.sections[name], id); ok {
			return el, name, true
		}
	}
	return nil, "", false
}

// DragStart picks up an element of the active section
func (e *Editor) DragStart(id string) bool {
	return e.drag.Start(e.Tree(), id)
}

// DragOverGap hovers a sibling gap
func (e *Editor) DragOverGap(parentID string, index int) bool {
	return e.drag.OverGap(parentID, index)
}

// DragOverBox hovers a box body
func (e *Editor) DragOverBox(boxID string) bool {
	box, ok := Find(e.Tree(), boxID)
	if !ok || !box.IsBox() {
		return false
	}
	return e.drag.OverBox(boxID)
}

// Drop releases the dragged element on the pending target
func (e *Editor) Drop() bool {
	out, moved := e.drag.Drop(e.Tree(), func(parentID string, el *Element) bool {
		if parentID == "" {
			return CanAdd(e.active, el.Kind)
		}
		return true
	})
	if moved {
		e.set(out)
	}
	return moved
}

// DragEnd cancels a gesture without dropping
func (e *Editor) DragEnd() {
	e.drag.End()
}

// Preview projects every section. Nodes of unchanged subtrees are reused
// from the previous call.
func (e *Editor) Preview() BubblePreview {
	return e.previewer.RenderBubble(e.sections)
}

func (e *Editor) apply(next Tree) bool {
	if !treeChanged(e.Tree(), next) {
		return false
	}
	e.set(next)
	return true
}

func (e *Editor) set(tree Tree) {
	e.sections[e.active] = tree
}

// treeChanged relies on operations returning their input when nothing changed
func treeChanged(before, after Tree) bool {
	if len(before) != len(after) {
		return true
	}
	if len(before) == 0 {
		return false
	}
	return &before[0] != &after[0]
}
