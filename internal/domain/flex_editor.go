package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
)

//go:generate mockgen -destination mocks/mock_flex_editor_service.go -package mocks github.com/lineoa/keywordconsole/internal/domain FlexEditorService,ImageUploadService,TemplateService

// ImageReadStatus is the state of an asynchronous image read
type ImageReadStatus string

const (
	ImageReadPending ImageReadStatus = "pending"
	ImageReadDone    ImageReadStatus = "done"
	ImageReadFailed  ImageReadStatus = "failed"
)

// ImageRead tracks one uploaded file being encoded into an image element
type ImageRead struct {
	ElementID   string          `json:"element_id"`
	Status      ImageReadStatus `json:"status"`
	FileName    string          `json:"file_name,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	Size        int64           `json:"size,omitempty"`
	Error       string          `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
}

// EditorSession is the snapshot of an editor returned to callers
type EditorSession struct {
	ID         string                    `json:"id"`
	KeywordID  string                    `json:"keyword_id,omitempty"`
	Active     flexmessage.SectionName   `json:"active_section"`
	ActiveHint string                    `json:"active_hint"`
	Sections   flexmessage.Sections      `json:"sections"`
	Expanded   []string                  `json:"expanded"`
	Drag       flexmessage.DragSnapshot  `json:"drag"`
	Preview    flexmessage.BubblePreview `json:"preview"`
	ImageReads []ImageRead               `json:"image_reads,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// EditorResult is the outcome of one editor event. Changed is false when the
// event was a no-op: an unknown id or a rejected structural change.
type EditorResult struct {
	Changed bool                 `json:"changed"`
	Element *flexmessage.Element `json:"element,omitempty"`
	Session *EditorSession       `json:"session"`
}

// PreviewResult is a bubble preview, optionally personalised
type PreviewResult struct {
	Preview flexmessage.BubblePreview `json:"preview"`
	HTML    string                    `json:"html,omitempty"`
}

type OpenEditorRequest struct {
	KeywordID string `json:"keyword_id,omitempty"`
	Template  string `json:"template,omitempty"`
}

func (r *OpenEditorRequest) Validate() error {
	if r.KeywordID != "" && r.Template != "" {
		return fmt.Errorf("invalid open editor request: keyword_id and template are mutually exclusive")
	}
	if r.KeywordID != "" && !govalidator.IsUUID(r.KeywordID) {
		return fmt.Errorf("invalid open editor request: keyword_id must be a UUID")
	}
	if r.Template != "" {
		if _, ok := flexmessage.FindTemplate(r.Template); !ok {
			return fmt.Errorf("invalid open editor request: unknown template %q", r.Template)
		}
	}
	return nil
}

// SessionRequest addresses a whole session (get, close, drop, dragEnd)
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	return validateSessionID("session", r.SessionID)
}

type SetActiveSectionRequest struct {
	SessionID string `json:"session_id"`
	Section   string `json:"section"`
}

func (r *SetActiveSectionRequest) Validate() (flexmessage.SectionName, error) {
	if err := validateSessionID("set active section", r.SessionID); err != nil {
		return "", err
	}
	name, err := flexmessage.ParseSectionName(r.Section)
	if err != nil {
		return "", fmt.Errorf("invalid set active section request: %w", err)
	}
	return name, nil
}

type AddElementRequest struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	BoxID     string `json:"box_id,omitempty"`
}

func (r *AddElementRequest) Validate() (flexmessage.ElementKind, error) {
	if err := validateSessionID("add element", r.SessionID); err != nil {
		return "", err
	}
	kind, err := flexmessage.ParseElementKind(r.Kind)
	if err != nil {
		return "", fmt.Errorf("invalid add element request: %w", err)
	}
	return kind, nil
}

// ElementRequest addresses one element of a session (remove, toggles, dragStart)
type ElementRequest struct {
	SessionID string `json:"session_id"`
	ElementID string `json:"element_id"`
}

func (r *ElementRequest) Validate() error {
	if err := validateSessionID("element", r.SessionID); err != nil {
		return err
	}
	if r.ElementID == "" {
		return fmt.Errorf("invalid element request: element_id is required")
	}
	return nil
}

type UpdateElementRequest struct {
	SessionID string          `json:"session_id"`
	ElementID string          `json:"element_id"`
	Patch     json.RawMessage `json:"patch"`
}

// Validate reads the patch keys. An absent key leaves the field untouched,
// an empty "content" clears it.
func (r *UpdateElementRequest) Validate() (flexmessage.Patch, error) {
	var patch flexmessage.Patch
	if err := validateSessionID("update element", r.SessionID); err != nil {
		return patch, err
	}
	if r.ElementID == "" {
		return patch, fmt.Errorf("invalid update element request: element_id is required")
	}
	if len(r.Patch) == 0 || !gjson.ValidBytes(r.Patch) {
		return patch, fmt.Errorf("invalid update element request: patch must be a JSON object")
	}
	parsed := gjson.ParseBytes(r.Patch)
	if !parsed.IsObject() {
		return patch, fmt.Errorf("invalid update element request: patch must be a JSON object")
	}

	if content := parsed.Get("content"); content.Exists() {
		if content.Type != gjson.String {
			return patch, fmt.Errorf("invalid update element request: content must be a string")
		}
		value := content.String()
		patch.Content = &value
	}
	if direction := parsed.Get("direction"); direction.Exists() {
		d := flexmessage.Direction(direction.String())
		if direction.Type != gjson.String || !d.IsValid() {
			return patch, fmt.Errorf("invalid update element request: direction must be horizontal or vertical")
		}
		patch.Direction = &d
	}
	if patch.IsEmpty() {
		return patch, fmt.Errorf("invalid update element request: patch has no known field")
	}
	return patch, nil
}

type MoveElementRequest struct {
	SessionID string `json:"session_id"`
	ElementID string `json:"element_id"`
	Delta     int    `json:"delta"`
}

func (r *MoveElementRequest) Validate() error {
	if err := validateSessionID("move element", r.SessionID); err != nil {
		return err
	}
	if r.ElementID == "" {
		return fmt.Errorf("invalid move element request: element_id is required")
	}
	if r.Delta == 0 {
		return fmt.Errorf("invalid move element request: delta must not be zero")
	}
	return nil
}

type DragOverGapRequest struct {
	SessionID string `json:"session_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Index     int    `json:"index"`
}

func (r *DragOverGapRequest) Validate() error {
	if err := validateSessionID("drag over gap", r.SessionID); err != nil {
		return err
	}
	if r.Index < 0 {
		return fmt.Errorf("invalid drag over gap request: index must not be negative")
	}
	return nil
}

type PreviewRequest struct {
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	HTML      bool                   `json:"html,omitempty"`
}

func (r *PreviewRequest) Validate() error {
	return validateSessionID("preview", r.SessionID)
}

type SetImageURLRequest struct {
	SessionID string `json:"session_id"`
	ElementID string `json:"element_id"`
	URL       string `json:"url"`
}

// Validate accepts http(s) URLs and base64 image data URLs
func (r *SetImageURLRequest) Validate() error {
	if err := validateSessionID("set image url", r.SessionID); err != nil {
		return err
	}
	if r.ElementID == "" {
		return fmt.Errorf("invalid set image url request: element_id is required")
	}
	if !IsImageSource(r.URL) {
		return fmt.Errorf("invalid set image url request: url must be an http(s) URL or an image data URL")
	}
	return nil
}

// IsImageSource reports whether s can be used as image element content
func IsImageSource(s string) bool {
	if strings.HasPrefix(s, "data:") {
		return strings.HasPrefix(s, "data:image/") && govalidator.IsDataURI(s)
	}
	if !govalidator.IsURL(s) {
		return false
	}
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// UploadImageRequest describes a file posted for an image element
type UploadImageRequest struct {
	SessionID   string
	ElementID   string
	FileName    string
	ContentType string
	Size        int64
}

func (r *UploadImageRequest) Validate(maxBytes int64) error {
	if err := validateSessionID("upload image", r.SessionID); err != nil {
		return err
	}
	if r.ElementID == "" {
		return fmt.Errorf("invalid upload image request: element_id is required")
	}
	if r.Size > maxBytes {
		return fmt.Errorf("invalid upload image request: file is %d bytes, limit is %d", r.Size, maxBytes)
	}
	return nil
}

type ApplyTemplateRequest struct {
	SessionID string            `json:"session_id"`
	Template  string            `json:"template"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

func (r *ApplyTemplateRequest) Validate() (flexmessage.TemplateDefinition, error) {
	if err := validateSessionID("apply template", r.SessionID); err != nil {
		return flexmessage.TemplateDefinition{}, err
	}
	def, ok := flexmessage.FindTemplate(r.Template)
	if !ok {
		return def, fmt.Errorf("invalid apply template request: unknown template %q", r.Template)
	}
	for slotID := range r.Overrides {
		slot, ok := def.Slot(slotID)
		if !ok || !slot.Kind.HasContent() {
			return def, fmt.Errorf("invalid apply template request: template %s has no editable slot %q", def.Name, slotID)
		}
	}
	return def, nil
}

func validateSessionID(op, id string) error {
	if id == "" {
		return fmt.Errorf("invalid %s request: session_id is required", op)
	}
	if !govalidator.IsUUID(id) {
		return fmt.Errorf("invalid %s request: session_id must be a UUID", op)
	}
	return nil
}

// FlexEditorService hosts editor sessions. Every event runs to completion
// before the next event of the same session starts.
type FlexEditorService interface {
	Open(ctx context.Context, req *OpenEditorRequest) (*EditorSession, error)
	Get(ctx context.Context, sessionID string) (*EditorSession, error)
	Close(ctx context.Context, sessionID string) error
	Sections(ctx context.Context, sessionID string) (flexmessage.Sections, error)

	SetActiveSection(ctx context.Context, sessionID string, section flexmessage.SectionName) (*EditorResult, error)
	AddElement(ctx context.Context, sessionID string, kind flexmessage.ElementKind, boxID string) (*EditorResult, error)
	RemoveElement(ctx context.Context, sessionID, elementID string) (*EditorResult, error)
	UpdateElement(ctx context.Context, sessionID, elementID string, patch flexmessage.Patch) (*EditorResult, error)
	ToggleDirection(ctx context.Context, sessionID, boxID string) (*EditorResult, error)
	MoveElement(ctx context.Context, sessionID, elementID string, delta int) (*EditorResult, error)
	ToggleExpanded(ctx context.Context, sessionID, boxID string) (*EditorResult, error)

	DragStart(ctx context.Context, sessionID, elementID string) (*EditorResult, error)
	DragOverGap(ctx context.Context, sessionID, parentID string, index int) (*EditorResult, error)
	DragOverBox(ctx context.Context, sessionID, boxID string) (*EditorResult, error)
	Drop(ctx context.Context, sessionID string) (*EditorResult, error)
	DragEnd(ctx context.Context, sessionID string) (*EditorResult, error)

	// Preview renders the bubble, personalising Liquid markup with data when given
	Preview(ctx context.Context, req *PreviewRequest) (*PreviewResult, error)
}

// ImageUploadService binds image sources to image elements
type ImageUploadService interface {
	// SetImageURL sets an external URL or data URL as the element source
	SetImageURL(ctx context.Context, req *SetImageURLRequest) (*EditorResult, error)

	// UploadImage starts an asynchronous read of file and returns the pending read
	UploadImage(ctx context.Context, req *UploadImageRequest, file io.Reader) (*ImageRead, error)

	// ImageStatus returns the latest read for an element
	ImageStatus(ctx context.Context, sessionID, elementID string) (*ImageRead, error)
}

// TemplateService lists presets and applies them to sessions
type TemplateService interface {
	ListTemplates(ctx context.Context) []flexmessage.TemplateDefinition
	ApplyTemplate(ctx context.Context, sessionID string, def flexmessage.TemplateDefinition, overrides map[string]string) (*EditorResult, error)
}
