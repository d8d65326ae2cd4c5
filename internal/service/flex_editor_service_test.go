package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/internal/domain/mocks"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/liquid"
)

func setupFlexEditorService(t *testing.T) (*FlexEditorService, *mocks.MockKeywordRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockKeywordRepository(ctrl)
	sessions := newTestSessions(t, newFakeClock())
	personalizer := NewPreviewPersonalizer(liquid.NewEngine(time.Second, 1024))
	return NewFlexEditorService(sessions, repo, personalizer, newNopLogger(ctrl)), repo
}

func TestFlexEditorService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		svc, _ := setupFlexEditorService(t)
		snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
		require.NoError(t, err)
		assert.Equal(t, flexmessage.SectionBody, snap.Active)
		assert.Equal(t, flexmessage.PlaceholderBubble, snap.Preview.Placeholder)
		assert.Equal(t, flexmessage.DragStateIdle, snap.Drag.State)
	})

	t.Run("from flex keyword", func(t *testing.T) {
		svc, repo := setupFlexEditorService(t)
		ids := flexmessage.NewSequenceGenerator("kw")
		sections := flexmessage.NewSections()
		box := flexmessage.NewElement(ids, flexmessage.ElementBox)
		sections[flexmessage.SectionBody] = flexmessage.Tree{box}
		repo.EXPECT().GetKeyword(ctx, "k1").Return(&domain.KeywordReply{ID: "k1", MessageType: domain.MessageTypeFlex, Flex: sections}, nil)

		snap, err := svc.Open(ctx, &domain.OpenEditorRequest{KeywordID: "k1"})
		require.NoError(t, err)
		assert.Equal(t, "k1", snap.KeywordID)
		assert.Len(t, snap.Sections[flexmessage.SectionBody], 1)
		assert.Equal(t, []string{box.ID}, snap.Expanded)
	})

	t.Run("from template", func(t *testing.T) {
		svc, _ := setupFlexEditorService(t)
		snap, err := svc.Open(ctx, &domain.OpenEditorRequest{Template: "product"})
		require.NoError(t, err)
		assert.Len(t, snap.Sections[flexmessage.SectionHero], 1)
		assert.Len(t, snap.Sections[flexmessage.SectionFooter], 2)
	})

	t.Run("keyword not found", func(t *testing.T) {
		svc, repo := setupFlexEditorService(t)
		repo.EXPECT().GetKeyword(ctx, "k2").Return(nil, domain.ErrKeywordNotFound("k2"))

		_, err := svc.Open(ctx, &domain.OpenEditorRequest{KeywordID: "k2"})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo := setupFlexEditorService(t)
		repo.EXPECT().GetKeyword(ctx, "k3").Return(nil, errors.New("boom"))

		_, err := svc.Open(ctx, &domain.OpenEditorRequest{KeywordID: "k3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load keyword")
	})
}

func TestFlexEditorService_UpdateImageContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)

	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	_, err = svc.SetActiveSection(ctx, snap.ID, flexmessage.SectionHero)
	require.NoError(t, err)
	res, err := svc.AddElement(ctx, snap.ID, flexmessage.ElementImage, "")
	require.NoError(t, err)
	imageID := res.Element.ID

	tests := []struct {
		name    string
		content string
		changed bool
	}{
		{"http url", "https://cdn.example.com/banner.png", true},
		{"script url", "javascript:alert(1)", false},
		{"plain text", "banner", false},
		{"non-image data url", "data:text/html;base64,PGI+aGk8L2I+", false},
		{"cleared", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := tc.content
			res, err := svc.UpdateElement(ctx, snap.ID, imageID, flexmessage.Patch{Content: &content})
			require.NoError(t, err)
			assert.Equal(t, tc.changed, res.Changed)

			el, ok := flexmessage.Find(res.Session.Sections[flexmessage.SectionHero], imageID)
			require.True(t, ok)
			assert.True(t, el.Content == "" || domain.IsImageSource(el.Content))
		})
	}
}

func TestFlexEditorService_DragTextIntoBox(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)

	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	id := snap.ID

	res, err := svc.AddElement(ctx, id, flexmessage.ElementText, "")
	require.NoError(t, err)
	require.True(t, res.Changed)
	text := res.Element

	content := "Hello"
	res, err = svc.UpdateElement(ctx, id, text.ID, flexmessage.Patch{Content: &content})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Hello", res.Element.Content)

	res, err = svc.AddElement(ctx, id, flexmessage.ElementBox, "")
	require.NoError(t, err)
	box := res.Element

	res, err = svc.DragStart(ctx, id, text.ID)
	require.NoError(t, err)
	assert.Equal(t, flexmessage.DragStateDragging, res.Session.Drag.State)
	assert.Empty(t, res.Session.Expanded, "every box collapses while dragging")

	res, err = svc.DragOverBox(ctx, id, box.ID)
	require.NoError(t, err)
	assert.Equal(t, flexmessage.DragStateDroppingOnBox, res.Session.Drag.State)

	res, err = svc.Drop(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, flexmessage.DragStateIdle, res.Session.Drag.State)

	body := res.Session.Sections[flexmessage.SectionBody]
	require.Len(t, body, 1)
	assert.Equal(t, box.ID, body[0].ID)
	assert.Equal(t, flexmessage.DirectionVertical, body[0].Direction)
	require.Len(t, body[0].Children, 1)
	assert.Equal(t, "Hello", body[0].Children[0].Content)
	assert.Contains(t, res.Session.Expanded, box.ID)

	res, err = svc.ToggleDirection(ctx, id, box.ID)
	require.NoError(t, err)
	assert.Equal(t, flexmessage.DirectionHorizontal, res.Element.Direction)
	res, err = svc.ToggleDirection(ctx, id, box.ID)
	require.NoError(t, err)
	assert.Equal(t, flexmessage.DirectionVertical, res.Element.Direction)

	preview := res.Session.Preview
	require.Len(t, preview.Sections, 1)
	require.Len(t, preview.Sections[0].Nodes, 1)
	assert.Equal(t, "Hello", preview.Sections[0].Nodes[0].Children[0].Label)
}

func TestFlexEditorService_HeroRejectsText(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)
	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)

	res, err := svc.SetActiveSection(ctx, snap.ID, flexmessage.SectionHero)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "選填，主圖", res.Session.ActiveHint)

	res, err = svc.AddElement(ctx, snap.ID, flexmessage.ElementText, "")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Nil(t, res.Element)
	assert.Empty(t, res.Session.Sections[flexmessage.SectionHero])

	res, err = svc.AddElement(ctx, snap.ID, flexmessage.ElementImage, "")
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = svc.SetActiveSection(ctx, snap.ID, flexmessage.SectionHero)
	require.NoError(t, err)
	assert.False(t, res.Changed, "already active")
}

func TestFlexEditorService_NoOpEvents(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)
	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	id := snap.ID

	res, err := svc.AddElement(ctx, id, flexmessage.ElementText, "")
	require.NoError(t, err)
	only := res.Element.ID

	content := "x"
	events := map[string]func() (*domain.EditorResult, error){
		"remove unknown":         func() (*domain.EditorResult, error) { return svc.RemoveElement(ctx, id, "nope") },
		"update unknown":         func() (*domain.EditorResult, error) { return svc.UpdateElement(ctx, id, "nope", flexmessage.Patch{Content: &content}) },
		"toggle non-box":         func() (*domain.EditorResult, error) { return svc.ToggleDirection(ctx, id, only) },
		"move past the end":      func() (*domain.EditorResult, error) { return svc.MoveElement(ctx, id, only, 1) },
		"expand non-box":         func() (*domain.EditorResult, error) { return svc.ToggleExpanded(ctx, id, only) },
		"add into unknown box":   func() (*domain.EditorResult, error) { return svc.AddElement(ctx, id, flexmessage.ElementText, "nope") },
		"drag unknown":           func() (*domain.EditorResult, error) { return svc.DragStart(ctx, id, "nope") },
		"drop without drag":      func() (*domain.EditorResult, error) { return svc.Drop(ctx, id) },
		"end without drag":       func() (*domain.EditorResult, error) { return svc.DragEnd(ctx, id) },
		"hover gap without drag": func() (*domain.EditorResult, error) { return svc.DragOverGap(ctx, id, "", 0) },
	}
	for name, event := range events {
		t.Run(name, func(t *testing.T) {
			res, err := event()
			require.NoError(t, err)
			assert.False(t, res.Changed)
			require.Len(t, res.Session.Sections[flexmessage.SectionBody], 1)
			assert.Equal(t, only, res.Session.Sections[flexmessage.SectionBody][0].ID)
		})
	}
}

func TestFlexEditorService_MoveAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)
	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	id := snap.ID

	first, err := svc.AddElement(ctx, id, flexmessage.ElementText, "")
	require.NoError(t, err)
	second, err := svc.AddElement(ctx, id, flexmessage.ElementSeparator, "")
	require.NoError(t, err)

	res, err := svc.MoveElement(ctx, id, second.Element.ID, -1)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	body := res.Session.Sections[flexmessage.SectionBody]
	assert.Equal(t, []string{second.Element.ID, first.Element.ID}, []string{body[0].ID, body[1].ID})

	res, err = svc.RemoveElement(ctx, id, first.Element.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, res.Session.Sections[flexmessage.SectionBody], 1)
}

func TestFlexEditorService_DragEndRestoresExpansion(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)
	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	id := snap.ID

	outer, err := svc.AddElement(ctx, id, flexmessage.ElementBox, "")
	require.NoError(t, err)
	text, err := svc.AddElement(ctx, id, flexmessage.ElementText, "")
	require.NoError(t, err)

	res, err := svc.ToggleExpanded(ctx, id, outer.Element.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Session.Expanded)

	_, err = svc.DragStart(ctx, id, text.Element.ID)
	require.NoError(t, err)
	res, err = svc.DragOverGap(ctx, id, "", 0)
	require.NoError(t, err)
	assert.Equal(t, flexmessage.DragStateDroppingOnGap, res.Session.Drag.State)

	res, err = svc.DragEnd(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, flexmessage.DragStateIdle, res.Session.Drag.State)
	assert.Empty(t, res.Session.Expanded, "the collapsed box stays collapsed")
}

func TestFlexEditorService_SessionErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)

	_, err := svc.Get(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.AddElement(ctx, "missing", flexmessage.ElementText, "")
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.Sections(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Close(ctx, "missing")))

	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, snap.ID))
	_, err = svc.Get(ctx, snap.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestFlexEditorService_Preview(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFlexEditorService(t)
	snap, err := svc.Open(ctx, &domain.OpenEditorRequest{})
	require.NoError(t, err)

	res, err := svc.AddElement(ctx, snap.ID, flexmessage.ElementText, "")
	require.NoError(t, err)
	greeting := "Hi {{ user.display_name }}"
	_, err = svc.UpdateElement(ctx, snap.ID, res.Element.ID, flexmessage.Patch{Content: &greeting})
	require.NoError(t, err)

	plain, err := svc.Preview(ctx, &domain.PreviewRequest{SessionID: snap.ID})
	require.NoError(t, err)
	assert.Equal(t, greeting, plain.Preview.Sections[0].Nodes[0].Label)
	assert.Empty(t, plain.HTML)

	personal, err := svc.Preview(ctx, &domain.PreviewRequest{
		SessionID: snap.ID,
		Data:      map[string]interface{}{"user": map[string]interface{}{"display_name": "Vin"}},
		HTML:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Vin", personal.Preview.Sections[0].Nodes[0].Label)
	assert.Contains(t, personal.HTML, "Hi Vin")

	again, err := svc.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, greeting, again.Preview.Sections[0].Nodes[0].Label, "personalisation never touches the session")

	broken := "{% if x %}"
	_, err = svc.UpdateElement(ctx, snap.ID, res.Element.ID, flexmessage.Patch{Content: &broken})
	require.NoError(t, err)
	_, err = svc.Preview(ctx, &domain.PreviewRequest{SessionID: snap.ID, Data: map[string]interface{}{"x": true}})
	assert.True(t, domain.IsValidation(err))
}
