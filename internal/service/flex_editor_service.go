package service

import (
	"context"
	"fmt"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/flexmessage"
	"github.com/lineoa/keywordconsole/pkg/logger"
	"github.com/lineoa/keywordconsole/pkg/tracing"
)

const flexEditorServiceName = "FlexEditorService"

// FlexEditorService runs editor events against sessions
type FlexEditorService struct {
	sessions    *EditorSessions
	keywordRepo domain.KeywordRepository
	personalize *PreviewPersonalizer
	logger      logger.Logger
}

func NewFlexEditorService(sessions *EditorSessions, keywordRepo domain.KeywordRepository, personalize *PreviewPersonalizer, logger logger.Logger) *FlexEditorService {
	return &FlexEditorService{
		sessions:    sessions,
		keywordRepo: keywordRepo,
		personalize: personalize,
		logger:      logger,
	}
}

// Open starts a session, empty, from a stored flex reply or from a template
func (s *FlexEditorService) Open(ctx context.Context, req *domain.OpenEditorRequest) (*domain.EditorSession, error) {
	return tracing.TraceMethodWithResult(ctx, flexEditorServiceName, "Open", func(ctx context.Context) (*domain.EditorSession, error) {
		ids := s.sessions.newIDs()
		sections := flexmessage.NewSections()

		switch {
		case req.KeywordID != "":
			reply, err := s.keywordRepo.GetKeyword(ctx, req.KeywordID)
			if err != nil {
				if domain.IsNotFound(err) {
					return nil, err
				}
				s.logger.WithField("keyword_id", req.KeywordID).Error(fmt.Sprintf("Failed to load keyword for editor: %v", err))
				return nil, fmt.Errorf("failed to load keyword: %w", err)
			}
			if reply.MessageType == domain.MessageTypeFlex && reply.Flex != nil {
				sections = reply.Flex
			}
		case req.Template != "":
			def, ok := flexmessage.FindTemplate(req.Template)
			if !ok {
				return nil, domain.NewValidationError(fmt.Sprintf("unknown template %q", req.Template))
			}
			sections = def.Build(ids, nil)
		}

		editor, err := flexmessage.NewEditorFromSections(ids, sections)
		if err != nil {
			s.logger.WithField("keyword_id", req.KeywordID).Error(fmt.Sprintf("Stored bubble is invalid: %v", err))
			return nil, fmt.Errorf("failed to open editor: %w", err)
		}

		snap := s.sessions.create(ctx, req.KeywordID, ids, editor)
		tracing.AddAttribute(ctx, "session_id", snap.ID)
		s.logger.WithFields(map[string]interface{}{
			"session_id": snap.ID,
			"keyword_id": req.KeywordID,
			"template":   req.Template,
		}).Info("Editor session opened")
		return snap, nil
	})
}

// Get returns the current session snapshot
func (s *FlexEditorService) Get(ctx context.Context, sessionID string) (*domain.EditorSession, error) {
	var snap *domain.EditorSession
	err := s.sessions.with(sessionID, func(sess *editorSession) error {
		snap = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Close discards a session
func (s *FlexEditorService) Close(ctx context.Context, sessionID string) error {
	return tracing.TraceMethod(ctx, flexEditorServiceName, "Close", func(ctx context.Context) error {
		tracing.AddAttribute(ctx, "session_id", sessionID)
		if err := s.sessions.close(sessionID); err != nil {
			return err
		}
		s.logger.WithField("session_id", sessionID).Info("Editor session closed by caller")
		return nil
	})
}

// Sections returns the session's section trees, for saving into a keyword reply
func (s *FlexEditorService) Sections(ctx context.Context, sessionID string) (flexmessage.Sections, error) {
	var sections flexmessage.Sections
	err := s.sessions.with(sessionID, func(sess *editorSession) error {
		sections = sess.editor.Sections()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (s *FlexEditorService) SetActiveSection(ctx context.Context, sessionID string, section flexmessage.SectionName) (*domain.EditorResult, error) {
	return s.apply(ctx, "SetActiveSection", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		if e.Active() == section {
			return false, nil
		}
		return e.SetActive(section), nil
	})
}

// AddElement appends to the active section, or to boxID when given
func (s *FlexEditorService) AddElement(ctx context.Context, sessionID string, kind flexmessage.ElementKind, boxID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "AddElement", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		var (
			el *flexmessage.Element
			ok bool
		)
		if boxID == "" {
			el, ok = e.Add(kind)
		} else {
			el, ok = e.AddToBox(boxID, kind)
		}
		return ok, el
	})
}

func (s *FlexEditorService) RemoveElement(ctx context.Context, sessionID, elementID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "RemoveElement", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.Remove(elementID), nil
	})
}

func (s *FlexEditorService) UpdateElement(ctx context.Context, sessionID, elementID string, patch flexmessage.Patch) (*domain.EditorResult, error) {
	return s.apply(ctx, "UpdateElement", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		// Image elements only hold an http(s) URL or an image data URL
		if target, ok := flexmessage.Find(e.Tree(), elementID); ok && target.Kind == flexmessage.ElementImage &&
			patch.Content != nil && *patch.Content != "" && !domain.IsImageSource(*patch.Content) {
			return false, nil
		}
		if !e.Update(elementID, patch) {
			return false, nil
		}
		el, _ := flexmessage.Find(e.Tree(), elementID)
		return true, el
	})
}

func (s *FlexEditorService) ToggleDirection(ctx context.Context, sessionID, boxID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "ToggleDirection", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		if !e.ToggleDirection(boxID) {
			return false, nil
		}
		el, _ := flexmessage.Find(e.Tree(), boxID)
		return true, el
	})
}

func (s *FlexEditorService) MoveElement(ctx context.Context, sessionID, elementID string, delta int) (*domain.EditorResult, error) {
	return s.apply(ctx, "MoveElement", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.Move(elementID, delta), nil
	})
}

func (s *FlexEditorService) ToggleExpanded(ctx context.Context, sessionID, boxID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "ToggleExpanded", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		_, ok := e.ToggleExpanded(boxID)
		return ok, nil
	})
}

func (s *FlexEditorService) DragStart(ctx context.Context, sessionID, elementID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "DragStart", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.DragStart(elementID), nil
	})
}

func (s *FlexEditorService) DragOverGap(ctx context.Context, sessionID, parentID string, index int) (*domain.EditorResult, error) {
	return s.apply(ctx, "DragOverGap", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.DragOverGap(parentID, index), nil
	})
}

func (s *FlexEditorService) DragOverBox(ctx context.Context, sessionID, boxID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "DragOverBox", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.DragOverBox(boxID), nil
	})
}

// Drop completes the gesture. Changed reports whether the tree moved; the
// gesture ends either way.
func (s *FlexEditorService) Drop(ctx context.Context, sessionID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "Drop", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		return e.Drop(), nil
	})
}

// DragEnd cancels the gesture. Changed reports whether one was in progress.
func (s *FlexEditorService) DragEnd(ctx context.Context, sessionID string) (*domain.EditorResult, error) {
	return s.apply(ctx, "DragEnd", sessionID, func(e *flexmessage.Editor) (bool, *flexmessage.Element) {
		active := e.Drag().State != flexmessage.DragStateIdle
		e.DragEnd()
		return active, nil
	})
}

// Preview renders the bubble, personalised when the request carries data
func (s *FlexEditorService) Preview(ctx context.Context, req *domain.PreviewRequest) (*domain.PreviewResult, error) {
	return tracing.TraceMethodWithResult(ctx, flexEditorServiceName, "Preview", func(ctx context.Context) (*domain.PreviewResult, error) {
		var preview flexmessage.BubblePreview
		err := s.sessions.with(req.SessionID, func(sess *editorSession) error {
			preview = sess.editor.Preview()
			return nil
		})
		if err != nil {
			return nil, err
		}

		if len(req.Data) > 0 {
			preview, err = s.personalize.Personalize(ctx, preview, req.Data)
			if err != nil {
				s.logger.WithField("session_id", req.SessionID).Warn(fmt.Sprintf("Preview personalisation failed: %v", err))
				return nil, domain.NewValidationError(err.Error())
			}
		}

		result := &domain.PreviewResult{Preview: preview}
		if req.HTML {
			result.HTML = flexmessage.RenderHTML(preview)
		}
		return result, nil
	})
}

// apply runs one editor event under the session lock and snapshots the result
func (s *FlexEditorService) apply(ctx context.Context, op, sessionID string, event func(e *flexmessage.Editor) (bool, *flexmessage.Element)) (*domain.EditorResult, error) {
	return tracing.TraceMethodWithResult(ctx, flexEditorServiceName, op, func(ctx context.Context) (*domain.EditorResult, error) {
		tracing.AddAttribute(ctx, "session_id", sessionID)

		var result *domain.EditorResult
		err := s.sessions.with(sessionID, func(sess *editorSession) error {
			changed, el := event(sess.editor)
			if changed {
				sess.pruneReads()
			}
			result = &domain.EditorResult{Changed: changed, Element: el, Session: sess.snapshot()}
			return nil
		})
		if err != nil {
			return nil, err
		}

		tracing.AddAttribute(ctx, "changed", result.Changed)
		tracing.RecordMutation(ctx, op, result.Changed)
		if !result.Changed {
			s.logger.WithFields(map[string]interface{}{
				"session_id": sessionID,
				"operation":  op,
			}).Debug("Editor event had no effect")
		}
		return result, nil
	})
}
