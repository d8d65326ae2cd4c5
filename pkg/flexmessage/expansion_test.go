package flexmessage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpansionSet(t *testing.T) {
	s := NewExpansionSet("b1")
	assert.True(t, s.IsExpanded("b1"))
	assert.False(t, s.IsExpanded("b2"))

	assert.True(t, s.Toggle("b2"))
	assert.False(t, s.Toggle("b1"))
	assert.Equal(t, []string{"b2"}, s.IDs())

	snap := s.Snapshot()
	s.Collapse([]string{"b2"})
	assert.Empty(t, s.IDs())
	assert.True(t, snap["b2"], "snapshot is a copy")

	s.Restore(snap, map[string]bool{"b3": true, "b4": false}, nil)
	assert.Equal(t, []string{"b2", "b3"}, s.IDs())
}

func TestExpansionSet_Prune(t *testing.T) {
	s := NewExpansionSet("b1", "b2", "gone")
	s.Prune(sampleTree(), Tree{})
	assert.Equal(t, []string{"b1", "b2"}, s.IDs())
}
