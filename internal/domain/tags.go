package domain

import (
	"strings"
)

// NormalizeTags trims every tag, drops empty ones and keeps the first
// occurrence of duplicates
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// TagInput is the state of a chip-style tag field: committed tags plus the
// text still being typed
type TagInput struct {
	Tags    []string `json:"tags"`
	Pending string   `json:"pending"`
}

// NewTagInput starts from already committed tags
func NewTagInput(tags []string) *TagInput {
	return &TagInput{Tags: NormalizeTags(tags)}
}

// Add commits a single value, ignoring blanks and duplicates
func (t *TagInput) Add(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, tag := range t.Tags {
		if tag == value {
			return false
		}
	}
	t.Tags = append(t.Tags, value)
	return true
}

// Type replaces the pending text. Every comma-terminated fragment is
// committed and the trailing fragment stays pending.
func (t *TagInput) Type(value string) {
	parts := strings.Split(value, ",")
	for _, part := range parts[:len(parts)-1] {
		t.Add(part)
	}
	t.Pending = parts[len(parts)-1]
}

// Commit adds the pending text as a tag and clears it
func (t *TagInput) Commit() {
	t.Add(t.Pending)
	t.Pending = ""
}

// ParseTags merges committed tags with raw comma-separated input
func ParseTags(tags []string, input string) []string {
	in := NewTagInput(tags)
	in.Type(input)
	in.Commit()
	return in.Tags
}
