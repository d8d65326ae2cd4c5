package flexmessage

import (
	"fmt"
)

// ElementKind represents the available Flex element kinds
type ElementKind string

const (
	ElementText      ElementKind = "text"
	ElementButton    ElementKind = "button"
	ElementImage     ElementKind = "image"
	ElementSeparator ElementKind = "separator"
	ElementBox       ElementKind = "box"
)

// AllElementKinds lists every kind in the order the editor toolbar shows them
var AllElementKinds = []ElementKind{
	ElementText,
	ElementButton,
	ElementImage,
	ElementSeparator,
	ElementBox,
}

// IsValid reports whether k is one of the known element kinds
func (k ElementKind) IsValid() bool {
	switch k {
	case ElementText, ElementButton, ElementImage, ElementSeparator, ElementBox:
		return true
	default:
		return false
	}
}

// HasContent reports whether elements of this kind carry a content payload
func (k ElementKind) HasContent() bool {
	switch k {
	case ElementText, ElementButton, ElementImage:
		return true
	default:
		return false
	}
}

// DisplayName returns the toolbar label for a kind
func (k ElementKind) DisplayName() string {
	switch k {
	case ElementText:
		return "Text"
	case ElementButton:
		return "Button"
	case ElementImage:
		return "Image"
	case ElementSeparator:
		return "Separator"
	case ElementBox:
		return "Box"
	default:
		return string(k)
	}
}

// ParseElementKind converts a raw string into an ElementKind
func ParseElementKind(s string) (ElementKind, error) {
	k := ElementKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid element kind: %s (must be 'text', 'button', 'image', 'separator' or 'box')", s)
	}
	return k, nil
}

// Direction is the layout axis of a box
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// IsValid reports whether d is a known direction
func (d Direction) IsValid() bool {
	return d == DirectionVertical || d == DirectionHorizontal
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == DirectionHorizontal {
		return DirectionVertical
	}
	return DirectionHorizontal
}

// Element is a node of a section tree. Only boxes carry Direction and Children.
//
// Elements handed out by the tree operations are shared between tree versions
// and must be treated as read-only; use Clone before mutating one.
type Element struct {
	ID        string      `json:"id"`
	Kind      ElementKind `json:"kind"`
	Content   string      `json:"content,omitempty"`
	Direction Direction   `json:"direction,omitempty"`
	Children  []*Element  `json:"children,omitempty"`
}

// NewElement creates an element of the given kind with a fresh id.
// Boxes start vertical with an empty child list.
func NewElement(ids IDGenerator, kind ElementKind) *Element {
	el := &Element{
		ID:   ids.NewID(),
		Kind: kind,
	}
	if kind == ElementBox {
		el.Direction = DirectionVertical
		el.Children = []*Element{}
	}
	return el
}

// NewElementWithContent creates a content-bearing element with a fresh id
func NewElementWithContent(ids IDGenerator, kind ElementKind, content string) *Element {
	el := NewElement(ids, kind)
	if kind.HasContent() {
		el.Content = content
	}
	return el
}

// IsBox reports whether the element is a container
func (e *Element) IsBox() bool {
	return e != nil && e.Kind == ElementBox
}

// Clone returns a deep copy of the element and its subtree
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	if e.Children != nil {
		out.Children = make([]*Element, len(e.Children))
		for i, child := range e.Children {
			out.Children[i] = child.Clone()
		}
	}
	return &out
}

// shallow copies the element node while keeping its children slice shared
func (e *Element) shallow() *Element {
	out := *e
	return &out
}

// Validate checks the element invariants recursively
func (e *Element) Validate() error {
	return e.validate(make(map[string]struct{}))
}

func (e *Element) validate(seen map[string]struct{}) error {
	if e == nil {
		return fmt.Errorf("element is nil")
	}
	if e.ID == "" {
		return fmt.Errorf("element must have 'id'")
	}
	if _, dup := seen[e.ID]; dup {
		return fmt.Errorf("element id %s appears more than once", e.ID)
	}
	seen[e.ID] = struct{}{}

	switch e.Kind {
	case ElementBox:
		if !e.Direction.IsValid() {
			return fmt.Errorf("box %s has invalid direction: %q", e.ID, e.Direction)
		}
		if e.Content != "" {
			return fmt.Errorf("box %s cannot have content", e.ID)
		}
		for i, child := range e.Children {
			if err := child.validate(seen); err != nil {
				return fmt.Errorf("box %s child %d: %w", e.ID, i, err)
			}
		}
		return nil
	case ElementText, ElementButton, ElementImage, ElementSeparator:
		if e.Direction != "" {
			return fmt.Errorf("element %s of kind %s cannot have a direction", e.ID, e.Kind)
		}
		if e.Children != nil {
			return fmt.Errorf("element %s of kind %s cannot have children", e.ID, e.Kind)
		}
		if e.Kind == ElementSeparator && e.Content != "" {
			return fmt.Errorf("separator %s cannot have content", e.ID)
		}
		return nil
	default:
		return fmt.Errorf("element %s has invalid kind: %s", e.ID, e.Kind)
	}
}
