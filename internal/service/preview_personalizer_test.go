package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/liquid"
)

func TestPreviewPersonalizer_Personalize(t *testing.T) {
	ids := flexmessage.NewSequenceGenerator("el")
	box := flexmessage.NewElement(ids, flexmessage.ElementBox)
	box.Children = []*flexmessage.Element{
		flexmessage.NewElementWithContent(ids, flexmessage.ElementButton, "{{ shop }} 購買"),
	}
	sections := flexmessage.NewSections()
	sections[flexmessage.SectionHero] = flexmessage.Tree{flexmessage.NewElementWithContent(ids, flexmessage.ElementImage, "https://cdn.example.com/{{ x }}.png")}
	sections[flexmessage.SectionBody] = flexmessage.Tree{
		flexmessage.NewElementWithContent(ids, flexmessage.ElementText, "Hi {{ name }}"),
		flexmessage.NewElement(ids, flexmessage.ElementText),
		box,
	}
	preview := flexmessage.PreviewBubble(sections)

	p := NewPreviewPersonalizer(liquid.NewEngine(time.Second, 1024))
	out, err := p.Personalize(context.Background(), preview, map[string]interface{}{"name": "Derek", "shop": "LINE"})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "https://cdn.example.com/{{ x }}.png", out.Sections[0].Nodes[0].Source)
	body := out.Sections[1].Nodes
	assert.Equal(t, "Hi Derek", body[0].Label)
	assert.Equal(t, flexmessage.PlaceholderText, body[1].Label)
	assert.Equal(t, "LINE 購買", body[2].Children[0].Label)

	assert.Equal(t, "Hi {{ name }}", preview.Sections[1].Nodes[0].Label, "input is not modified")
	assert.NotSame(t, preview.Sections[1].Nodes[2], body[2])
}

func TestPreviewPersonalizer_Error(t *testing.T) {
	ids := flexmessage.NewSequenceGenerator("el")
	sections := flexmessage.NewSections()
	sections[flexmessage.SectionFooter] = flexmessage.Tree{flexmessage.NewElementWithContent(ids, flexmessage.ElementButton, "{% for %}")}

	p := NewPreviewPersonalizer(liquid.NewEngine(time.Second, 1024))
	_, err := p.Personalize(context.Background(), flexmessage.PreviewBubble(sections), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section Footer")
	assert.Contains(t, err.Error(), "element el-1")
}
