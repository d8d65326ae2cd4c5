package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

type KeywordService struct {
	repo   domain.KeywordRepository
	editor domain.FlexEditorService
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

func NewKeywordService(repo domain.KeywordRepository, editor domain.FlexEditorService, logger logger.Logger) *KeywordService {
	return &KeywordService{
		repo:   repo,
		editor: editor,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *KeywordService) ListKeywords(ctx context.Context, filter domain.KeywordFilter) ([]*domain.KeywordReply, error) {
	replies, err := s.repo.ListKeywords(ctx, filter)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list keywords: %v", err))
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	return replies, nil
}

func (s *KeywordService) GetKeyword(ctx context.Context, id string) (*domain.KeywordReply, error) {
	reply, err := s.repo.GetKeyword(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("keyword_id", id).Error(fmt.Sprintf("Failed to get keyword: %v", err))
		return nil, fmt.Errorf("failed to get keyword: %w", err)
	}
	return reply, nil
}

func (s *KeywordService) CreateKeyword(ctx context.Context, reply *domain.KeywordReply, sessionID string) (*domain.KeywordReply, error) {
	return tracing.TraceMethodWithResult(ctx, "KeywordService", "CreateKeyword", func(ctx context.Context) (*domain.KeywordReply, error) {
		if err := s.prepare(ctx, reply, sessionID); err != nil {
			return nil, err
		}
		reply.ID = s.newID()
		now := s.now().UTC()
		reply.CreatedAt = now
		reply.UpdatedAt = now

		if err := reply.Validate(); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := s.checkConflicts(ctx, reply); err != nil {
			return nil, err
		}

		if err := s.repo.CreateKeyword(ctx, reply); err != nil {
			s.logger.WithField("keyword_id", reply.ID).Error(fmt.Sprintf("Failed to create keyword: %v", err))
			return nil, fmt.Errorf("failed to create keyword: %w", err)
		}
		return reply, nil
	})
}

func (s *KeywordService) UpdateKeyword(ctx context.Context, reply *domain.KeywordReply, sessionID string) (*domain.KeywordReply, error) {
	return tracing.TraceMethodWithResult(ctx, "KeywordService", "UpdateKeyword", func(ctx context.Context) (*domain.KeywordReply, error) {
		existing, err := s.GetKeyword(ctx, reply.ID)
		if err != nil {
			return nil, err
		}
		if err := s.prepare(ctx, reply, sessionID); err != nil {
			return nil, err
		}
		reply.CreatedAt = existing.CreatedAt
		reply.UpdatedAt = s.now().UTC()

		if err := reply.Validate(); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := s.checkConflicts(ctx, reply); err != nil {
			return nil, err
		}

		if err := s.repo.UpdateKeyword(ctx, reply); err != nil {
			if domain.IsNotFound(err) {
				return nil, err
			}
			s.logger.WithField("keyword_id", reply.ID).Error(fmt.Sprintf("Failed to update keyword: %v", err))
			return nil, fmt.Errorf("failed to update keyword: %w", err)
		}
		return reply, nil
	})
}

func (s *KeywordService) DeleteKeyword(ctx context.Context, id string) error {
	return tracing.TraceMethod(ctx, "KeywordService", "DeleteKeyword", func(ctx context.Context) error {
		if err := s.repo.DeleteKeyword(ctx, id); err != nil {
			if domain.IsNotFound(err) {
				return err
			}
			s.logger.WithField("keyword_id", id).Error(fmt.Sprintf("Failed to delete keyword: %v", err))
			return fmt.Errorf("failed to delete keyword: %w", err)
		}
		return nil
	})
}

// MatchKeyword returns the oldest reply one of whose keywords equals message
func (s *KeywordService) MatchKeyword(ctx context.Context, message string) (*domain.KeywordReply, error) {
	replies, err := s.ListKeywords(ctx, domain.KeywordFilter{})
	if err != nil {
		return nil, err
	}
	for _, reply := range replies {
		if reply.Matches(message) {
			return reply, nil
		}
	}
	return nil, &domain.ErrNotFound{Entity: "keyword reply for message", ID: strings.TrimSpace(message)}
}

// prepare copies the editor bubble into a flex reply when a session is given
func (s *KeywordService) prepare(ctx context.Context, reply *domain.KeywordReply, sessionID string) error {
	if sessionID != "" {
		sections, err := s.editor.Sections(ctx, sessionID)
		if err != nil {
			return err
		}
		reply.Flex = sections.Clone()
	}
	reply.Normalize()
	return nil
}

func (s *KeywordService) checkConflicts(ctx context.Context, reply *domain.KeywordReply) error {
	others, err := s.ListKeywords(ctx, domain.KeywordFilter{})
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.ID == reply.ID {
			continue
		}
		for _, keyword := range reply.Keywords {
			if other.Matches(keyword) {
				return &domain.ErrKeywordConflict{Keyword: keyword, OwnerID: other.ID}
			}
		}
	}
	return nil
}

// SeedDemoKeywords stores the console's demo replies
func (s *KeywordService) SeedDemoKeywords(ctx context.Context) error {
	ids := flexmessage.UUIDGenerator{}
	base := s.now().UTC()

	for i, seed := range demoKeywords(ids) {
		seed.ID = s.newID()
		seed.CreatedAt = base.Add(time.Duration(i) * time.Second)
		seed.UpdatedAt = seed.CreatedAt
		seed.Normalize()
		if err := seed.Validate(); err != nil {
			return fmt.Errorf("invalid demo keyword %q: %w", seed.Keywords[0], err)
		}
		if err := s.repo.CreateKeyword(ctx, seed); err != nil {
			return fmt.Errorf("failed to seed keyword %q: %w", seed.Keywords[0], err)
		}
	}
	s.logger.Info("Demo keywords seeded")
	return nil
}

func demoKeywords(ids flexmessage.IDGenerator) []*domain.KeywordReply {
	flex := func(template string) flexmessage.Sections {
		def, _ := flexmessage.FindTemplate(template)
		return def.Build(ids, nil)
	}
	welcome := flexmessage.NewSections()
	welcome[flexmessage.SectionBody] = flexmessage.Tree{
		flexmessage.NewElementWithContent(ids, flexmessage.ElementText, "歡迎光臨！"),
		flexmessage.NewElementWithContent(ids, flexmessage.ElementText, "Hi {{ user.display_name }}，感謝加入好友"),
	}
	welcome[flexmessage.SectionFooter] = flexmessage.Tree{
		flexmessage.NewElementWithContent(ids, flexmessage.ElementButton, "查看最新優惠"),
	}

	return []*domain.KeywordReply{
		{Keywords: []string{"test"}, MessageType: domain.MessageTypeText, Text: "這是測試訊息"},
		{Keywords: []string{"測試"}, MessageType: domain.MessageTypeText, Text: "收到您的測試訊息"},
		{Keywords: []string{"Vin"}, MessageType: domain.MessageTypeFlex, Flex: flex("coupon"), AddTags: []string{"coupon"}},
		{Keywords: []string{"Derek"}, MessageType: domain.MessageTypeFlex, Flex: flex("product")},
		{Keywords: []string{"test sticker"}, MessageType: domain.MessageTypeText, Text: "(sticker)"},
		{Keywords: []string{"hello world"}, MessageType: domain.MessageTypeFlex, Flex: flex("announcement")},
		{Keywords: []string{"歡迎光臨"}, MessageType: domain.MessageTypeFlex, Flex: welcome, AddTags: []string{"新好友"}, RemoveTags: []string{"未讀"}},
	}
}
