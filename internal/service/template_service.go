package service

import (
	"context"
	"fmt"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

// TemplateService lists the built-in bubble presets and applies them to sessions
type TemplateService struct {
	sessions *EditorSessions
	logger   logger.Logger
}

func NewTemplateService(sessions *EditorSessions, logger logger.Logger) *TemplateService {
	return &TemplateService{
		sessions: sessions,
		logger:   logger,
	}
}

func (s *TemplateService) ListTemplates(ctx context.Context) []flexmessage.TemplateDefinition {
	out := make([]flexmessage.TemplateDefinition, len(flexmessage.Templates))
	copy(out, flexmessage.Templates)
	return out
}

// ApplyTemplate replaces every section of the session with the template's
// content. Pending image reads keep running and find their element gone;
// finished reads of replaced elements are dropped.
func (s *TemplateService) ApplyTemplate(ctx context.Context, sessionID string, def flexmessage.TemplateDefinition, overrides map[string]string) (*domain.EditorResult, error) {
	return tracing.TraceMethodWithResult(ctx, "TemplateService", "ApplyTemplate", func(ctx context.Context) (*domain.EditorResult, error) {
		values := flexmessage.TemplateOverrides{}
		for slotID, value := range overrides {
			if !values.Set(def, slotID, value) {
				return nil, domain.NewValidationError(fmt.Sprintf("template %s has no editable slot %q", def.Name, slotID))
			}
		}

		var result *domain.EditorResult
		err := s.sessions.with(sessionID, func(sess *editorSession) error {
			editor, err := flexmessage.NewEditorFromSections(sess.ids, def.Build(sess.ids, values))
			if err != nil {
				return fmt.Errorf("failed to build template %s: %w", def.Name, err)
			}
			sess.editor = editor
			sess.pruneReads()
			result = &domain.EditorResult{Changed: true, Session: sess.snapshot()}
			return nil
		})
		if err != nil {
			if !domain.IsNotFound(err) {
				s.logger.WithField("template", def.Name).Error(fmt.Sprintf("Failed to apply template: %v", err))
			}
			return nil, err
		}

		tracing.RecordMutation(ctx, "ApplyTemplate", true)
		s.logger.WithFields(map[string]interface{}{
			"session_id": sessionID,
			"template":   def.Name,
		}).Info("Template applied")
		return result, nil
	})
}
