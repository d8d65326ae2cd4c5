package flexmessage

// Tree is the ordered top-level element sequence of a section.
//
// Every operation is total and persistent: it never mutates its input, copies
// only the path from the root to the changed node, and returns the input tree
// itself when nothing changed (unknown id, rejected constraint).
type Tree []*Element

// Patch holds the fields Update may replace. Nil fields are left untouched.
// Kind is deliberately absent: elements are never retyped.
type Patch struct {
	Content   *string    `json:"content,omitempty"`
	Direction *Direction `json:"direction,omitempty"`
}

// IsEmpty reports whether the patch carries no field
func (p Patch) IsEmpty() bool {
	return p.Content == nil && p.Direction == nil
}

// Find returns the first element with the given id, searching depth-first and
// visiting a box's children before the siblings that follow it.
func Find(tree Tree, id string) (*Element, bool) {
	for _, el := range tree {
		if el.ID == id {
			return el, true
		}
		if el.IsBox() {
			if found, ok := Find(el.Children, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// Contains reports whether an element with the given id exists in the tree
func Contains(tree Tree, id string) bool {
	_, ok := Find(tree, id)
	return ok
}

// ParentOf locates an element. parentID is empty for top-level elements.
func ParentOf(tree Tree, id string) (parentID string, index int, found bool) {
	return parentOf(tree, "", id)
}

func parentOf(list []*Element, parentID, id string) (string, int, bool) {
	for i, el := range list {
		if el.ID == id {
			return parentID, i, true
		}
		if el.IsBox() {
			if p, idx, ok := parentOf(el.Children, el.ID, id); ok {
				return p, idx, true
			}
		}
	}
	return "", 0, false
}

// Remove deletes the element with the given id wherever it occurs
func Remove(tree Tree, id string) Tree {
	out, _, ok := detach(tree, id)
	if !ok {
		return tree
	}
	return out
}

// Detach removes the element with the given id and returns it alongside the new tree
func Detach(tree Tree, id string) (Tree, *Element, bool) {
	out, removed, ok := detach(tree, id)
	if !ok {
		return tree, nil, false
	}
	return out, removed, true
}

func detach(list []*Element, id string) ([]*Element, *Element, bool) {
	for i, el := range list {
		if el.ID == id {
			out := make([]*Element, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, el, true
		}
		if el.IsBox() {
			children, removed, ok := detach(el.Children, id)
			if ok {
				return replaceAt(list, i, withChildren(el, children)), removed, true
			}
		}
	}
	return list, nil, false
}

// InsertAt inserts element into the top level at a clamped index.
// Elements whose ids already occur in the tree are rejected to prevent aliasing.
func InsertAt(tree Tree, element *Element, index int) Tree {
	if !insertable(tree, element) {
		return tree
	}
	return insertInto(tree, element, index)
}

// InsertIntoBox inserts element as a child of boxID at a clamped index.
// A missing or non-box target leaves the tree unchanged.
func InsertIntoBox(tree Tree, boxID string, element *Element, index int) Tree {
	if !insertable(tree, element) {
		return tree
	}
	out, ok := replace(tree, boxID, func(el *Element) *Element {
		if !el.IsBox() {
			return nil
		}
		return withChildren(el, insertInto(el.Children, element, index))
	})
	if !ok {
		return tree
	}
	return out
}

// Update applies patch to the element with the given id. Content is only
// applied to content-bearing kinds and Direction only to boxes.
func Update(tree Tree, id string, patch Patch) Tree {
	out, ok := replace(tree, id, func(el *Element) *Element {
		next := el.shallow()
		changed := false
		if patch.Content != nil && el.Kind.HasContent() && *patch.Content != el.Content {
			next.Content = *patch.Content
			changed = true
		}
		if patch.Direction != nil && el.IsBox() && patch.Direction.IsValid() && *patch.Direction != el.Direction {
			next.Direction = *patch.Direction
			changed = true
		}
		if !changed {
			return nil
		}
		return next
	})
	if !ok {
		return tree
	}
	return out
}

// ToggleDirection flips a box between horizontal and vertical
func ToggleDirection(tree Tree, boxID string) Tree {
	out, ok := replace(tree, boxID, func(el *Element) *Element {
		if !el.IsBox() {
			return nil
		}
		next := el.shallow()
		next.Direction = el.Direction.Flip()
		return next
	})
	if !ok {
		return tree
	}
	return out
}

// Move shifts an element delta positions among its current siblings.
// Moves that would leave the sibling list are ignored.
func Move(tree Tree, id string, delta int) Tree {
	if delta == 0 {
		return tree
	}
	parentID, index, found := ParentOf(tree, id)
	if !found {
		return tree
	}

	if parentID == "" {
		reordered, ok := reorder(tree, index, delta)
		if !ok {
			return tree
		}
		return reordered
	}

	out, ok := replace(tree, parentID, func(parent *Element) *Element {
		children, ok := reorder(parent.Children, index, delta)
		if !ok {
			return nil
		}
		return withChildren(parent, children)
	})
	if !ok {
		return tree
	}
	return out
}

// IsDescendant reports whether candidateID lies anywhere inside the subtree of
// the box ancestorID. An element is not its own descendant.
func IsDescendant(tree Tree, ancestorID, candidateID string) bool {
	ancestor, ok := Find(tree, ancestorID)
	if !ok || !ancestor.IsBox() {
		return false
	}
	return Contains(ancestor.Children, candidateID)
}

// BoxIDs returns the ids of every box in depth-first order
func BoxIDs(tree Tree) []string {
	ids := []string{}
	Walk(tree, func(el *Element, _ int) bool {
		if el.IsBox() {
			ids = append(ids, el.ID)
		}
		return true
	})
	return ids
}

// Count returns the number of elements in the tree, nested ones included
func Count(tree Tree) int {
	n := 0
	Walk(tree, func(*Element, int) bool {
		n++
		return true
	})
	return n
}

// Walk visits elements depth-first. Returning false from fn skips the
// element's children.
func Walk(tree Tree, fn func(el *Element, depth int) bool) {
	walk(tree, 0, fn)
}

func walk(list []*Element, depth int, fn func(*Element, int) bool) {
	for _, el := range list {
		if fn(el, depth) && el.IsBox() {
			walk(el.Children, depth+1, fn)
		}
	}
}

// Equal reports whether two trees are structurally identical. A box with a
// nil child list equals a box with an empty one.
func Equal(a, b Tree) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalElement(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalElement(a, b *Element) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID || a.Kind != b.Kind || a.Content != b.Content || a.Direction != b.Direction {
		return false
	}
	return Equal(a.Children, b.Children)
}

// Clone deep-copies a tree
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, el := range t {
		out[i] = el.Clone()
	}
	return out
}

// Validate checks every element invariant, including id uniqueness across the tree
func (t Tree) Validate() error {
	seen := make(map[string]struct{})
	for _, el := range t {
		if err := el.validate(seen); err != nil {
			return err
		}
	}
	return nil
}

// replace rebuilds the path to id, substituting fn's result for the element.
// fn returning nil means "no change" and leaves the tree untouched.
func replace(list []*Element, id string, fn func(*Element) *Element) ([]*Element, bool) {
	for i, el := range list {
		if el.ID == id {
			next := fn(el)
			if next == nil {
				return list, false
			}
			return replaceAt(list, i, next), true
		}
		if el.IsBox() {
			children, ok := replace(el.Children, id, fn)
			if ok {
				return replaceAt(list, i, withChildren(el, children)), true
			}
			if Contains(el.Children, id) {
				return list, false
			}
		}
	}
	return list, false
}

func replaceAt(list []*Element, i int, el *Element) []*Element {
	out := make([]*Element, len(list))
	copy(out, list)
	out[i] = el
	return out
}

func withChildren(el *Element, children []*Element) *Element {
	next := el.shallow()
	next.Children = children
	return next
}

func insertInto(list []*Element, element *Element, index int) []*Element {
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	out := make([]*Element, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, element)
	out = append(out, list[index:]...)
	return out
}

func reorder(list []*Element, index, delta int) ([]*Element, bool) {
	target := index + delta
	if target < 0 || target >= len(list) {
		return list, false
	}
	out := make([]*Element, 0, len(list))
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return insertInto(out, list[index], target), true
}

func insertable(tree Tree, element *Element) bool {
	if element == nil {
		return false
	}
	clash := false
	Walk(Tree{element}, func(el *Element, _ int) bool {
		if Contains(tree, el.ID) {
			clash = true
		}
		return !clash
	})
	return !clash
}
