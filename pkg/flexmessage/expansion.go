package flexmessage

import "sort"

// ExpansionSet tracks which boxes are expanded in the editor tree view
type ExpansionSet struct {
	ids map[string]bool
}

// NewExpansionSet creates an expansion set with the given boxes expanded
func NewExpansionSet(ids ...string) *ExpansionSet {
	s := &ExpansionSet{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

// IsExpanded reports whether the box is expanded
func (s *ExpansionSet) IsExpanded(id string) bool {
	return s.ids[id]
}

// Set expands or collapses a box
func (s *ExpansionSet) Set(id string, expanded bool) {
	if expanded {
		s.ids[id] = true
		return
	}
	delete(s.ids, id)
}

// Toggle flips a box and returns its new state
func (s *ExpansionSet) Toggle(id string) bool {
	next := !s.ids[id]
	s.Set(id, next)
	return next
}

// Collapse collapses every listed box
func (s *ExpansionSet) Collapse(ids []string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Snapshot copies the current state
func (s *ExpansionSet) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}

// Restore replaces the state with the union of the given sets
func (s *ExpansionSet) Restore(sets ...map[string]bool) {
	s.ids = make(map[string]bool)
	for _, set := range sets {
		for id, on := range set {
			if on {
				s.ids[id] = true
			}
		}
	}
}

// IDs returns the expanded box ids, sorted
func (s *ExpansionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prune forgets boxes that are no longer present in any of the trees
func (s *ExpansionSet) Prune(trees ...Tree) {
	for id := range s.ids {
		present := false
		for _, t := range trees {
			if Contains(t, id) {
				present = true
				break
			}
		}
		if !present {
			delete(s.ids, id)
		}
	}
}
