package flexmessage

import (
	"fmt"
)

// SectionName identifies one of the four fixed bubble regions
type SectionName string

const (
	SectionHeader SectionName = "Header"
	SectionHero   SectionName = "Hero"
	SectionBody   SectionName = "Body"
	SectionFooter SectionName = "Footer"
)

// AllSections lists the sections in display order
var AllSections = []SectionName{SectionHeader, SectionHero, SectionBody, SectionFooter}

// AllowedKindsMap defines which kinds each section accepts at top level
var AllowedKindsMap = map[SectionName][]ElementKind{
	SectionHeader: AllElementKinds,
	SectionHero:   {ElementImage},
	SectionBody:   AllElementKinds,
	SectionFooter: AllElementKinds,
}

// IsValid reports whether s names a known section
func (s SectionName) IsValid() bool {
	_, ok := AllowedKindsMap[s]
	return ok
}

// ParseSectionName converts a raw string into a SectionName
func ParseSectionName(s string) (SectionName, error) {
	name := SectionName(s)
	if !name.IsValid() {
		return "", fmt.Errorf("invalid section: %s (must be 'Header', 'Hero', 'Body' or 'Footer')", s)
	}
	return name, nil
}

// Hint returns the helper text shown under a section's toolbar
func (s SectionName) Hint() string {
	if s == SectionHero {
		return "選填，主圖"
	}
	return "點擊上方按鈕新增元件"
}

// CanAdd reports whether a section accepts kind at its top level
func CanAdd(section SectionName, kind ElementKind) bool {
	for _, allowed := range AllowedKindsMap[section] {
		if allowed == kind {
			return true
		}
	}
	return false
}

// Sections maps every section to its tree
type Sections map[SectionName]Tree

// NewSections creates four empty sections
func NewSections() Sections {
	s := make(Sections, len(AllSections))
	for _, name := range AllSections {
		s[name] = Tree{}
	}
	return s
}

// Clone deep-copies every section
func (s Sections) Clone() Sections {
	out := make(Sections, len(s))
	for name, tree := range s {
		out[name] = tree.Clone()
	}
	return out
}

// Trees returns the section trees in display order
func (s Sections) Trees() []Tree {
	out := make([]Tree, 0, len(AllSections))
	for _, name := range AllSections {
		out = append(out, s[name])
	}
	return out
}

// IsEmpty reports whether no section holds an element
func (s Sections) IsEmpty() bool {
	for _, tree := range s {
		if len(tree) > 0 {
			return false
		}
	}
	return true
}

// Validate checks section names, per-section kind constraints, element
// invariants and that no id appears in more than one section
func (s Sections) Validate() error {
	seen := make(map[string]struct{})
	for name, tree := range s {
		if !name.IsValid() {
			return fmt.Errorf("invalid section: %s", name)
		}
		for i, el := range tree {
			if el == nil {
				return fmt.Errorf("section %s element %d is nil", name, i)
			}
			if !CanAdd(name, el.Kind) {
				return fmt.Errorf("section %s does not accept %s elements", name, el.Kind)
			}
			if err := el.validate(seen); err != nil {
				return fmt.Errorf("section %s element %d: %w", name, i, err)
			}
		}
	}
	return nil
}
