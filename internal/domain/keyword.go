package domain

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
)

//go:generate mockgen -destination mocks/mock_keyword_service.go -package mocks github.com/lineoa/keywordconsole/internal/domain KeywordService
//go:generate mockgen -destination mocks/mock_keyword_repository.go -package mocks github.com/lineoa/keywordconsole/internal/domain KeywordRepository

// MessageType is the kind of reply sent when a keyword matches
type MessageType string

const (
	MessageTypeText MessageType = "text"
	MessageTypeFlex MessageType = "flex"
)

const (
	maxKeywordLength  = 100
	maxKeywordsPerRow = 20
	maxTextLength     = 5000
	maxTagLength      = 50
)

// IsValid reports whether t is a known message type
func (t MessageType) IsValid() bool {
	return t == MessageTypeText || t == MessageTypeFlex
}

// CategoryLabel is the badge shown in the keyword list
func (t MessageType) CategoryLabel() string {
	if t == MessageTypeFlex {
		return "FLEX"
	}
	return "文字"
}

// KeywordReply is an automatic reply triggered by one of its keywords
type KeywordReply struct {
	ID          string               `json:"id"`
	Keywords    []string             `json:"keywords"`
	MessageType MessageType          `json:"message_type"`
	Text        string               `json:"text,omitempty"`
	Flex        flexmessage.Sections `json:"flex,omitempty"`
	AddTags     []string             `json:"add_tags"`
	RemoveTags  []string             `json:"remove_tags"`
	Category    string               `json:"category"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Validate checks the reply is complete for its message type
func (k *KeywordReply) Validate() error {
	if k.ID == "" {
		return fmt.Errorf("invalid keyword reply: id is required")
	}
	if err := validateTagList("keywords", k.Keywords, maxKeywordLength); err != nil {
		return fmt.Errorf("invalid keyword reply: %w", err)
	}
	if len(k.Keywords) == 0 {
		return fmt.Errorf("invalid keyword reply: at least one keyword is required")
	}
	if len(k.Keywords) > maxKeywordsPerRow {
		return fmt.Errorf("invalid keyword reply: at most %d keywords are allowed", maxKeywordsPerRow)
	}
	if err := validateTagList("add_tags", k.AddTags, maxTagLength); err != nil {
		return fmt.Errorf("invalid keyword reply: %w", err)
	}
	if err := validateTagList("remove_tags", k.RemoveTags, maxTagLength); err != nil {
		return fmt.Errorf("invalid keyword reply: %w", err)
	}
	for _, tag := range k.AddTags {
		for _, removed := range k.RemoveTags {
			if tag == removed {
				return fmt.Errorf("invalid keyword reply: tag %q cannot be both added and removed", tag)
			}
		}
	}

	switch k.MessageType {
	case MessageTypeText:
		if strings.TrimSpace(k.Text) == "" {
			return fmt.Errorf("invalid keyword reply: text is required for text replies")
		}
		if utf8.RuneCountInString(k.Text) > maxTextLength {
			return fmt.Errorf("invalid keyword reply: text must be at most %d characters", maxTextLength)
		}
	case MessageTypeFlex:
		if k.Flex == nil || k.Flex.IsEmpty() {
			return fmt.Errorf("invalid keyword reply: flex replies need at least one element")
		}
		if err := k.Flex.Validate(); err != nil {
			return fmt.Errorf("invalid keyword reply: %w", err)
		}
	default:
		return fmt.Errorf("invalid keyword reply: unknown message type %q", k.MessageType)
	}
	return nil
}

// Normalize trims tag lists, drops the unused body and fills the category
func (k *KeywordReply) Normalize() {
	k.Keywords = NormalizeTags(k.Keywords)
	k.AddTags = NormalizeTags(k.AddTags)
	k.RemoveTags = NormalizeTags(k.RemoveTags)
	switch k.MessageType {
	case MessageTypeText:
		k.Flex = nil
	case MessageTypeFlex:
		k.Text = ""
	}
	k.Category = k.MessageType.CategoryLabel()
}

// Matches reports whether message triggers this reply. Matching is exact
// after trimming, under Unicode case folding.
func (k *KeywordReply) Matches(message string) bool {
	message = strings.TrimSpace(message)
	for _, keyword := range k.Keywords {
		if strings.EqualFold(keyword, message) {
			return true
		}
	}
	return false
}

func validateTagList(field string, tags []string, maxLen int) error {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%s must not contain blank values", field)
		}
		if utf8.RuneCountInString(tag) > maxLen {
			return fmt.Errorf("%s values must be at most %d characters", field, maxLen)
		}
	}
	return nil
}

// KeywordFilter narrows a keyword listing
type KeywordFilter struct {
	Query       string
	MessageType MessageType
}

// Match reports whether reply passes the filter
func (f KeywordFilter) Match(reply *KeywordReply) bool {
	if f.MessageType != "" && reply.MessageType != f.MessageType {
		return false
	}
	if f.Query == "" {
		return true
	}
	query := strings.ToLower(f.Query)
	for _, keyword := range reply.Keywords {
		if strings.Contains(strings.ToLower(keyword), query) {
			return true
		}
	}
	return false
}

// Request/Response types

type ListKeywordsRequest struct {
	Query       string      `json:"query,omitempty"`
	MessageType MessageType `json:"message_type,omitempty"`
}

func (r *ListKeywordsRequest) FromURLParams(queryParams url.Values) (err error) {
	r.Query = strings.TrimSpace(queryParams.Get("query"))
	r.MessageType = MessageType(queryParams.Get("message_type"))

	if r.MessageType != "" && !r.MessageType.IsValid() {
		return fmt.Errorf("invalid list keywords request: message_type must be text or flex")
	}
	if utf8.RuneCountInString(r.Query) > maxKeywordLength {
		return fmt.Errorf("invalid list keywords request: query must be at most %d characters", maxKeywordLength)
	}
	return nil
}

// Filter converts the request into a repository filter
func (r *ListKeywordsRequest) Filter() KeywordFilter {
	return KeywordFilter{Query: r.Query, MessageType: r.MessageType}
}

type ListKeywordsResponse struct {
	Keywords   []*KeywordReply `json:"keywords"`
	TotalCount int             `json:"total_count"`
}

type GetKeywordRequest struct {
	ID string `json:"id"`
}

func (r *GetKeywordRequest) FromURLParams(queryParams url.Values) (err error) {
	r.ID = queryParams.Get("id")
	return validateKeywordID("get keyword", r.ID)
}

// KeywordPayload is the editable part of a keyword reply shared by create and update
type KeywordPayload struct {
	Keywords      []string             `json:"keywords"`
	KeywordsInput string               `json:"keywords_input,omitempty"`
	MessageType   MessageType          `json:"message_type"`
	Text          string               `json:"text,omitempty"`
	Flex          flexmessage.Sections `json:"flex,omitempty"`
	SessionID     string               `json:"session_id,omitempty"`
	AddTags       []string             `json:"add_tags,omitempty"`
	RemoveTags    []string             `json:"remove_tags,omitempty"`
}

func (p *KeywordPayload) validate(op string) (*KeywordReply, error) {
	if !p.MessageType.IsValid() {
		return nil, fmt.Errorf("invalid %s request: message_type must be text or flex", op)
	}
	if p.SessionID != "" {
		if p.MessageType != MessageTypeFlex {
			return nil, fmt.Errorf("invalid %s request: session_id is only allowed for flex replies", op)
		}
		if !govalidator.IsUUID(p.SessionID) {
			return nil, fmt.Errorf("invalid %s request: session_id must be a UUID", op)
		}
	}

	reply := &KeywordReply{
		Keywords:    ParseTags(p.Keywords, p.KeywordsInput),
		MessageType: p.MessageType,
		Text:        p.Text,
		Flex:        p.Flex,
		AddTags:     p.AddTags,
		RemoveTags:  p.RemoveTags,
	}
	reply.Normalize()
	if len(reply.Keywords) == 0 {
		return nil, fmt.Errorf("invalid %s request: at least one keyword is required", op)
	}
	return reply, nil
}

type CreateKeywordRequest struct {
	KeywordPayload
}

// Validate returns the reply to create and the editor session to copy its bubble from
func (r *CreateKeywordRequest) Validate() (reply *KeywordReply, sessionID string, err error) {
	reply, err = r.validate("create keyword")
	if err != nil {
		return nil, "", err
	}
	return reply, r.SessionID, nil
}

type UpdateKeywordRequest struct {
	ID string `json:"id"`
	KeywordPayload
}

func (r *UpdateKeywordRequest) Validate() (reply *KeywordReply, sessionID string, err error) {
	if err := validateKeywordID("update keyword", r.ID); err != nil {
		return nil, "", err
	}
	reply, err = r.validate("update keyword")
	if err != nil {
		return nil, "", err
	}
	reply.ID = r.ID
	return reply, r.SessionID, nil
}

type DeleteKeywordRequest struct {
	ID string `json:"id"`
}

func (r *DeleteKeywordRequest) Validate() error {
	return validateKeywordID("delete keyword", r.ID)
}

type MatchKeywordRequest struct {
	Message string `json:"message"`
}

func (r *MatchKeywordRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("invalid match keyword request: message is required")
	}
	return nil
}

func validateKeywordID(op, id string) error {
	if id == "" {
		return fmt.Errorf("invalid %s request: id is required", op)
	}
	if !govalidator.IsUUID(id) {
		return fmt.Errorf("invalid %s request: id must be a UUID", op)
	}
	return nil
}

// KeywordService manages keyword replies
type KeywordService interface {
	// ListKeywords returns replies passing the filter, oldest first
	ListKeywords(ctx context.Context, filter KeywordFilter) ([]*KeywordReply, error)

	// GetKeyword retrieves a reply by ID
	GetKeyword(ctx context.Context, id string) (*KeywordReply, error)

	// CreateKeyword stores a new reply. A non-empty sessionID copies the bubble
	// of that editor session into the reply.
	CreateKeyword(ctx context.Context, reply *KeywordReply, sessionID string) (*KeywordReply, error)

	// UpdateKeyword replaces an existing reply
	UpdateKeyword(ctx context.Context, reply *KeywordReply, sessionID string) (*KeywordReply, error)

	// DeleteKeyword removes a reply
	DeleteKeyword(ctx context.Context, id string) error

	// MatchKeyword finds the reply a chat message triggers
	MatchKeyword(ctx context.Context, message string) (*KeywordReply, error)
}

// KeywordRepository stores keyword replies
type KeywordRepository interface {
	CreateKeyword(ctx context.Context, reply *KeywordReply) error
	GetKeyword(ctx context.Context, id string) (*KeywordReply, error)
	ListKeywords(ctx context.Context, filter KeywordFilter) ([]*KeywordReply, error)
	UpdateKeyword(ctx context.Context, reply *KeywordReply) error
	DeleteKeyword(ctx context.Context, id string) error
}
