package service

import (
	"context"
	"fmt"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/liquid"
)

// PreviewPersonalizer renders Liquid markup in preview labels against sample
// recipient data, e.g. "Hi {{ user.display_name }}"
type PreviewPersonalizer struct {
	engine *liquid.Engine
}

func NewPreviewPersonalizer(engine *liquid.Engine) *PreviewPersonalizer {
	return &PreviewPersonalizer{engine: engine}
}

// Personalize returns a copy of preview with every text and button label
// rendered. Image sources and placeholders are left as they are. The input
// is not modified.
func (p *PreviewPersonalizer) Personalize(ctx context.Context, preview flexmessage.BubblePreview, data map[string]interface{}) (flexmessage.BubblePreview, error) {
	out := flexmessage.BubblePreview{
		Placeholder: preview.Placeholder,
		Sections:    make([]flexmessage.SectionPreview, len(preview.Sections)),
	}
	for i, section := range preview.Sections {
		labels := make(map[string]string)
		collectLabels(section.Nodes, labels)

		rendered, err := p.engine.RenderEach(ctx, labels, data)
		if err != nil {
			return flexmessage.BubblePreview{}, fmt.Errorf("section %s: element %w", section.Name, err)
		}
		out.Sections[i] = flexmessage.SectionPreview{Name: section.Name, Nodes: withLabels(section.Nodes, rendered)}
	}
	return out, nil
}

// collectLabels gathers the labels carrying Liquid markup, keyed by element id
func collectLabels(nodes []*flexmessage.PreviewNode, labels map[string]string) {
	for _, node := range nodes {
		if !node.Placeholder && (node.Kind == flexmessage.ElementText || node.Kind == flexmessage.ElementButton) && liquid.HasMarkup(node.Label) {
			labels[node.ElementID] = node.Label
		}
		collectLabels(node.Children, labels)
	}
}

func withLabels(nodes []*flexmessage.PreviewNode, rendered map[string]string) []*flexmessage.PreviewNode {
	if nodes == nil {
		return nil
	}
	out := make([]*flexmessage.PreviewNode, len(nodes))
	for i, node := range nodes {
		c := *node
		if label, ok := rendered[c.ElementID]; ok {
			c.Label = label
		}
		c.Children = withLabels(node.Children, rendered)
		out[i] = &c
	}
	return out
}
