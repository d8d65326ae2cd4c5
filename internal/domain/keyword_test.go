package domain

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
)

const testUUID = "0b8f4c3e-2d4a-4b6f-9a51-6c1d2e3f4a5b"

func flexSections() flexmessage.Sections {
	ids := flexmessage.NewSequenceGenerator("el")
	sections := flexmessage.NewSections()
	sections[flexmessage.SectionBody] = flexmessage.Tree{flexmessage.NewElementWithContent(ids, flexmessage.ElementText, "Hello")}
	return sections
}

func TestMessageType(t *testing.T) {
	assert.True(t, MessageTypeText.IsValid())
	assert.True(t, MessageTypeFlex.IsValid())
	assert.False(t, MessageType("carousel").IsValid())

	assert.Equal(t, "文字", MessageTypeText.CategoryLabel())
	assert.Equal(t, "FLEX", MessageTypeFlex.CategoryLabel())
}

func TestKeywordReply_Validate(t *testing.T) {
	valid := func() *KeywordReply {
		return &KeywordReply{
			ID:          testUUID,
			Keywords:    []string{"test"},
			MessageType: MessageTypeText,
			Text:        "hi",
		}
	}

	testCases := []struct {
		name    string
		mutate  func(k *KeywordReply)
		wantErr string
	}{
		{"valid text", func(k *KeywordReply) {}, ""},
		{"valid flex", func(k *KeywordReply) { k.MessageType = MessageTypeFlex; k.Flex = flexSections() }, ""},
		{"missing id", func(k *KeywordReply) { k.ID = "" }, "id is required"},
		{"no keywords", func(k *KeywordReply) { k.Keywords = nil }, "at least one keyword"},
		{"blank keyword", func(k *KeywordReply) { k.Keywords = []string{" "} }, "blank values"},
		{"too many keywords", func(k *KeywordReply) {
			k.Keywords = make([]string, maxKeywordsPerRow+1)
			for i := range k.Keywords {
				k.Keywords[i] = strings.Repeat("k", i+1)
			}
		}, "at most 20 keywords"},
		{"long tag", func(k *KeywordReply) { k.AddTags = []string{strings.Repeat("標", maxTagLength+1)} }, "add_tags values"},
		{"tag added and removed", func(k *KeywordReply) { k.AddTags = []string{"vip"}; k.RemoveTags = []string{"vip"} }, "both added and removed"},
		{"empty text", func(k *KeywordReply) { k.Text = "  " }, "text is required"},
		{"empty flex", func(k *KeywordReply) { k.MessageType = MessageTypeFlex; k.Flex = flexmessage.NewSections() }, "at least one element"},
		{"hero text", func(k *KeywordReply) {
			k.MessageType = MessageTypeFlex
			k.Flex = flexSections()
			k.Flex[flexmessage.SectionHero] = flexmessage.Tree{flexmessage.NewElement(flexmessage.NewSequenceGenerator("h"), flexmessage.ElementText)}
		}, "invalid keyword reply"},
		{"unknown type", func(k *KeywordReply) { k.MessageType = "sticker" }, "unknown message type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k := valid()
			tc.mutate(k)
			err := k.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestKeywordReply_Normalize(t *testing.T) {
	k := &KeywordReply{
		Keywords:    []string{" a ", "a", "b"},
		MessageType: MessageTypeFlex,
		Text:        "leftover",
		Flex:        flexSections(),
		AddTags:     []string{"x", ""},
	}
	k.Normalize()

	assert.Equal(t, []string{"a", "b"}, k.Keywords)
	assert.Equal(t, []string{"x"}, k.AddTags)
	assert.Empty(t, k.Text)
	assert.Equal(t, "FLEX", k.Category)

	k.MessageType = MessageTypeText
	k.Normalize()
	assert.Nil(t, k.Flex)
	assert.Equal(t, "文字", k.Category)
}

func TestKeywordReply_Matches(t *testing.T) {
	k := &KeywordReply{Keywords: []string{"Hello World", "歡迎光臨"}}
	assert.True(t, k.Matches("hello world"))
	assert.True(t, k.Matches("  歡迎光臨 "))
	assert.False(t, k.Matches("hello"))

	accented := &KeywordReply{Keywords: []string{"CAFÉ"}}
	assert.True(t, accented.Matches("café"), "case folding covers non-ASCII letters")
}

func TestKeywordFilter_Match(t *testing.T) {
	k := &KeywordReply{Keywords: []string{"test sticker"}, MessageType: MessageTypeText}

	assert.True(t, KeywordFilter{}.Match(k))
	assert.True(t, KeywordFilter{Query: "STICK"}.Match(k))
	assert.False(t, KeywordFilter{Query: "flex"}.Match(k))
	assert.False(t, KeywordFilter{MessageType: MessageTypeFlex}.Match(k))
}

func TestListKeywordsRequest_FromURLParams(t *testing.T) {
	var req ListKeywordsRequest
	require.NoError(t, req.FromURLParams(url.Values{"query": {" test "}, "message_type": {"text"}}))
	assert.Equal(t, KeywordFilter{Query: "test", MessageType: MessageTypeText}, req.Filter())

	err := req.FromURLParams(url.Values{"message_type": {"bubble"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message_type must be text or flex")
}

func TestGetKeywordRequest_FromURLParams(t *testing.T) {
	var req GetKeywordRequest
	assert.Error(t, req.FromURLParams(url.Values{}))
	assert.Error(t, req.FromURLParams(url.Values{"id": {"nope"}}))
	assert.NoError(t, req.FromURLParams(url.Values{"id": {testUUID}}))
	assert.Equal(t, testUUID, req.ID)
}

func TestCreateKeywordRequest_Validate(t *testing.T) {
	t.Run("merges pending keyword input", func(t *testing.T) {
		req := &CreateKeywordRequest{KeywordPayload{
			Keywords:      []string{"test"},
			KeywordsInput: "測試, hello",
			MessageType:   MessageTypeText,
			Text:          "hi",
			AddTags:       []string{"vip", "vip "},
		}}
		reply, sessionID, err := req.Validate()
		require.NoError(t, err)
		assert.Empty(t, sessionID)
		assert.Equal(t, []string{"test", "測試", "hello"}, reply.Keywords)
		assert.Equal(t, []string{"vip"}, reply.AddTags)
		assert.Equal(t, "文字", reply.Category)
	})

	t.Run("flex with session", func(t *testing.T) {
		req := &CreateKeywordRequest{KeywordPayload{Keywords: []string{"Derek"}, MessageType: MessageTypeFlex, SessionID: testUUID}}
		reply, sessionID, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, testUUID, sessionID)
		assert.Equal(t, MessageTypeFlex, reply.MessageType)
	})

	testCases := []struct {
		name    string
		payload KeywordPayload
		wantErr string
	}{
		{"bad type", KeywordPayload{Keywords: []string{"a"}, MessageType: "x"}, "message_type"},
		{"session on text", KeywordPayload{Keywords: []string{"a"}, MessageType: MessageTypeText, SessionID: testUUID}, "only allowed for flex"},
		{"bad session", KeywordPayload{Keywords: []string{"a"}, MessageType: MessageTypeFlex, SessionID: "abc"}, "session_id must be a UUID"},
		{"no keywords", KeywordPayload{Keywords: []string{" "}, KeywordsInput: " ", MessageType: MessageTypeText}, "at least one keyword"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := &CreateKeywordRequest{tc.payload}
			_, _, err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestUpdateKeywordRequest_Validate(t *testing.T) {
	req := &UpdateKeywordRequest{ID: testUUID, KeywordPayload: KeywordPayload{Keywords: []string{"a"}, MessageType: MessageTypeText, Text: "t"}}
	reply, _, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, testUUID, reply.ID)

	req.ID = ""
	_, _, err = req.Validate()
	assert.Error(t, err)
}

func TestDeleteAndMatchRequests(t *testing.T) {
	assert.Error(t, (&DeleteKeywordRequest{}).Validate())
	assert.NoError(t, (&DeleteKeywordRequest{ID: testUUID}).Validate())

	assert.Error(t, (&MatchKeywordRequest{Message: "  "}).Validate())
	assert.NoError(t, (&MatchKeywordRequest{Message: "test"}).Validate())
}
