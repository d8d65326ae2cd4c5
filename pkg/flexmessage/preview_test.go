package flexmessage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	tree := Tree{
		text("t1", ""),
		text("t2", "Hello"),
		button("btn1", ""),
		image("i1", ""),
		image("i2", "https://example.com/a.png"),
		separator("s1"),
		box("b1", DirectionHorizontal),
		box("b2", DirectionVertical, button("btn2", "Go")),
	}

	nodes := Preview(tree)
	require.Len(t, nodes, len(tree))

	tests := []struct {
		index       int
		label       string
		source      string
		placeholder bool
	}{
		{0, PlaceholderText, "", true},
		{1, "Hello", "", false},
		{2, PlaceholderButton, "", true},
		{3, PlaceholderImage, "", true},
		{4, "", "https://example.com/a.png", false},
		{5, "", "", false},
		{6, PlaceholderBox, "", true},
		{7, "", "", false},
	}

	for _, tc := range tests {
		node := nodes[tc.index]
		assert.Equal(t, tree[tc.index].ID, node.ElementID)
		assert.Equal(t, tree[tc.index].Kind, node.Kind)
		assert.Equal(t, tc.label, node.Label, "label of %s", node.ElementID)
		assert.Equal(t, tc.source, node.Source, "source of %s", node.ElementID)
		assert.Equal(t, tc.placeholder, node.Placeholder, "placeholder of %s", node.ElementID)
	}

	assert.Equal(t, DirectionHorizontal, nodes[6].Layout)
	require.Len(t, nodes[7].Children, 1)
	assert.Equal(t, "Go", nodes[7].Children[0].Label)
}

func TestPreview_Pure(t *testing.T) {
	tree := sampleTree()
	snapshot := tree.Clone()

	first := Preview(tree)
	second := Preview(tree)
	assert.Equal(t, first, second)
	assert.Equal(t, Preview(snapshot), first, "equal trees give equal projections")
	assert.True(t, Equal(snapshot, tree), "rendering never mutates the tree")
}

func TestPreviewer_ReusesUnchangedSubtrees(t *testing.T) {
	p := NewPreviewer()
	tree := sampleTree()
	first := p.Render(tree)

	next := Update(tree, "t1", Patch{Content: strPtr("Bye")})
	second := p.Render(next)

	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, "Bye", second[0].Label)
	assert.Same(t, first[1], second[1], "untouched box reuses its node")
	assert.Same(t, first[2], second[2])

	deeper := Update(next, "btn1", Patch{Content: strPtr("Stop")})
	third := p.Render(deeper)
	assert.Same(t, second[0], third[0])
	assert.NotSame(t, second[1], third[1], "path to the change is rebuilt")
	assert.Same(t, second[1].Children[0], third[1].Children[0], "sibling t2 reused")
	assert.Equal(t, "Stop", third[1].Children[1].Children[0].Label)
	assert.Equal(t, "Go", second[1].Children[1].Children[0].Label, "earlier projection untouched")
}

func TestPreviewer_ForgetsDroppedElements(t *testing.T) {
	p := NewPreviewer()
	tree := sampleTree()
	p.Render(tree)
	p.Render(Tree{tree[0]})

	assert.Len(t, p.memo, 1)
	_, ok := p.memo[tree[0]]
	assert.True(t, ok)
}

func TestPreviewBubble(t *testing.T) {
	t.Run("empty bubble shows the preview-area placeholder", func(t *testing.T) {
		out := PreviewBubble(NewSections())
		assert.Empty(t, out.Sections)
		assert.Equal(t, PlaceholderBubble, out.Placeholder)
	})

	t.Run("only non-empty sections in display order", func(t *testing.T) {
		s := NewSections()
		s[SectionFooter] = Tree{button("btn", "OK")}
		s[SectionHero] = Tree{image("img", "")}

		out := PreviewBubble(s)
		require.Len(t, out.Sections, 2)
		assert.Equal(t, SectionHero, out.Sections[0].Name)
		assert.Equal(t, SectionFooter, out.Sections[1].Name)
		assert.Empty(t, out.Placeholder)
	})
}
