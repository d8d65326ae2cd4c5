package flexmessage

// Placeholder labels shown by the preview when an element has nothing to show
const (
	PlaceholderText   = "文字"
	PlaceholderButton = "按鈕"
	PlaceholderImage  = "尚未設定圖片"
	PlaceholderBox    = "空的 Box"
	PlaceholderBubble = "訊息預覽區"
)

// PreviewNode is the read-only visual projection of an element
type PreviewNode struct {
	ElementID   string         `json:"element_id"`
	Kind        ElementKind    `json:"kind"`
	Label       string         `json:"label,omitempty"`
	Source      string         `json:"source,omitempty"`
	Layout      Direction      `json:"layout,omitempty"`
	Placeholder bool           `json:"placeholder,omitempty"`
	Children    []*PreviewNode `json:"children,omitempty"`
}

// SectionPreview is the projection of one non-empty section
type SectionPreview struct {
	Name  SectionName    `json:"name"`
	Nodes []*PreviewNode `json:"nodes"`
}

// BubblePreview is the projection of a whole bubble
type BubblePreview struct {
	Sections    []SectionPreview `json:"sections"`
	Placeholder string           `json:"placeholder,omitempty"`
}

// Preview projects a tree. It is pure: equal trees give equal projections.
func Preview(tree Tree) []*PreviewNode {
	return NewPreviewer().Render(tree)
}

// PreviewBubble projects every non-empty section in display order. A bubble
// with no content carries the preview-area placeholder instead.
func PreviewBubble(sections Sections) BubblePreview {
	return NewPreviewer().RenderBubble(sections)
}

// Previewer renders trees and reuses the nodes of subtrees that did not change
// since the previous render. Elements are immutable once inserted, so an
// element pointer seen before always projects to the same node.
type Previewer struct {
	memo map[*Element]*PreviewNode
	next map[*Element]*PreviewNode
}

// NewPreviewer creates a previewer with an empty memo
func NewPreviewer() *Previewer {
	return &Previewer{memo: make(map[*Element]*PreviewNode)}
}

// Render projects a single tree
func (p *Previewer) Render(tree Tree) []*PreviewNode {
	p.begin()
	defer p.commit()
	return p.renderList(tree)
}

// RenderBubble projects all sections
func (p *Previewer) RenderBubble(sections Sections) BubblePreview {
	p.begin()
	defer p.commit()

	out := BubblePreview{Sections: []SectionPreview{}}
	for _, name := range AllSections {
		tree := sections[name]
		if len(tree) == 0 {
			continue
		}
		out.Sections = append(out.Sections, SectionPreview{Name: name, Nodes: p.renderList(tree)})
	}
	if len(out.Sections) == 0 {
		out.Placeholder = PlaceholderBubble
	}
	return out
}

func (p *Previewer) begin() {
	p.next = make(map[*Element]*PreviewNode, len(p.memo))
}

func (p *Previewer) commit() {
	p.memo = p.next
	p.next = nil
}

func (p *Previewer) renderList(list []*Element) []*PreviewNode {
	out := make([]*PreviewNode, 0, len(list))
	for _, el := range list {
		out = append(out, p.render(el))
	}
	return out
}

func (p *Previewer) render(el *Element) *PreviewNode {
	if node, ok := p.memo[el]; ok {
		p.keep(el)
		return node
	}

	node := &PreviewNode{ElementID: el.ID, Kind: el.Kind}
	switch el.Kind {
	case ElementText:
		node.Label, node.Placeholder = labelOr(el.Content, PlaceholderText)
	case ElementButton:
		node.Label, node.Placeholder = labelOr(el.Content, PlaceholderButton)
	case ElementImage:
		if el.Content == "" {
			node.Label = PlaceholderImage
			node.Placeholder = true
		} else {
			node.Source = el.Content
		}
	case ElementSeparator:
	case ElementBox:
		node.Layout = el.Direction
		if len(el.Children) == 0 {
			node.Label = PlaceholderBox
			node.Placeholder = true
		} else {
			node.Children = p.renderList(el.Children)
		}
	}

	p.next[el] = node
	return node
}

// keep carries a memoized subtree into the next generation
func (p *Previewer) keep(el *Element) {
	p.next[el] = p.memo[el]
	if el.IsBox() {
		for _, child := range el.Children {
			if _, ok := p.memo[child]; ok {
				p.keep(child)
			}
		}
	}
}

func labelOr(content, placeholder string) (string, bool) {
	if content == "" {
		return placeholder, true
	}
	return content, false
}
