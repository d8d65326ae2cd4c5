package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/logger"
)

// multipartOverhead is the room left for form fields around an uploaded file
const multipartOverhead = 1 << 20

type FlexEditorHandler struct {
	editor        domain.FlexEditorService
	uploads       domain.ImageUploadService
	templates     domain.TemplateService
	maxImageBytes int64
	logger        logger.Logger
}

func NewFlexEditorHandler(
	editor domain.FlexEditorService,
	uploads domain.ImageUploadService,
	templates domain.TemplateService,
	maxImageBytes int64,
	logger logger.Logger,
) *FlexEditorHandler {
	return &FlexEditorHandler{
		editor:        editor,
		uploads:       uploads,
		templates:     templates,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

func (h *FlexEditorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/flexEditor.open", h.handleOpen)
	mux.HandleFunc("/api/flexEditor.get", h.handleGet)
	mux.HandleFunc("/api/flexEditor.close", h.handleClose)
	mux.HandleFunc("/api/flexEditor.setActiveSection", h.handleSetActiveSection)
	mux.HandleFunc("/api/flexEditor.addElement", h.handleAddElement)
	mux.HandleFunc("/api/flexEditor.removeElement", h.elementAction(h.editor.RemoveElement, "Failed to remove element"))
	mux.HandleFunc("/api/flexEditor.updateElement", h.handleUpdateElement)
	mux.HandleFunc("/api/flexEditor.toggleDirection", h.elementAction(h.editor.ToggleDirection, "Failed to toggle direction"))
	mux.HandleFunc("/api/flexEditor.moveElement", h.handleMoveElement)
	mux.HandleFunc("/api/flexEditor.toggleExpanded", h.elementAction(h.editor.ToggleExpanded, "Failed to toggle expansion"))
	mux.HandleFunc("/api/flexEditor.dragStart", h.elementAction(h.editor.DragStart, "Failed to start drag"))
	mux.HandleFunc("/api/flexEditor.dragOverGap", h.handleDragOverGap)
	mux.HandleFunc("/api/flexEditor.dragOverBox", h.elementAction(h.editor.DragOverBox, "Failed to hover box"))
	mux.HandleFunc("/api/flexEditor.drop", h.sessionAction(h.editor.Drop, "Failed to drop element"))
	mux.HandleFunc("/api/flexEditor.dragEnd", h.sessionAction(h.editor.DragEnd, "Failed to end drag"))
	mux.HandleFunc("/api/flexEditor.preview", h.handlePreview)
	mux.HandleFunc("/api/flexEditor.previewHtml", h.handlePreviewHTML)
	mux.HandleFunc("/api/flexEditor.uploadImage", h.handleUploadImage)
	mux.HandleFunc("/api/flexEditor.setImageUrl", h.handleSetImageURL)
	mux.HandleFunc("/api/flexEditor.imageStatus", h.handleImageStatus)
	mux.HandleFunc("/api/flexEditor.applyTemplate", h.handleApplyTemplate)
}

func (h *FlexEditorHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.OpenEditorRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.editor.Open(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to open editor")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *FlexEditorHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.SessionRequest{SessionID: r.URL.Query().Get("session_id")}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.editor.Get(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get editor session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *FlexEditorHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SessionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.editor.Close(r.Context(), req.SessionID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to close editor session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}

func (h *FlexEditorHandler) handleSetActiveSection(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SetActiveSectionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	section, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.SetActiveSection(r.Context(), req.SessionID, section)
	h.writeResult(w, result, err, "Failed to set active section")
}

func (h *FlexEditorHandler) handleAddElement(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.AddElementRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	kind, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.AddElement(r.Context(), req.SessionID, kind, req.BoxID)
	h.writeResult(w, result, err, "Failed to add element")
}

func (h *FlexEditorHandler) handleUpdateElement(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateElementRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	patch, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.UpdateElement(r.Context(), req.SessionID, req.ElementID, patch)
	h.writeResult(w, result, err, "Failed to update element")
}

func (h *FlexEditorHandler) handleMoveElement(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.MoveElementRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.MoveElement(r.Context(), req.SessionID, req.ElementID, req.Delta)
	h.writeResult(w, result, err, "Failed to move element")
}

func (h *FlexEditorHandler) handleDragOverGap(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.DragOverGapRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.DragOverGap(r.Context(), req.SessionID, req.ParentID, req.Index)
	h.writeResult(w, result, err, "Failed to hover gap")
}

func (h *FlexEditorHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.PreviewRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render preview")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePreviewHTML serves the bubble as a standalone HTML fragment
func (h *FlexEditorHandler) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.PreviewRequest{SessionID: r.URL.Query().Get("session_id"), HTML: true}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.editor.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.HTML))
}

func (h *FlexEditorHandler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		WriteJSONError(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req := domain.UploadImageRequest{
		SessionID:   r.FormValue("session_id"),
		ElementID:   r.FormValue("element_id"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	read, err := h.uploads.UploadImage(r.Context(), &req, file)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to upload image")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"read": read,
	})
}

func (h *FlexEditorHandler) handleSetImageURL(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SetImageURLRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.uploads.SetImageURL(r.Context(), &req)
	h.writeResult(w, result, err, "Failed to set image url")
}

func (h *FlexEditorHandler) handleImageStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.ElementRequest{
		SessionID: r.URL.Query().Get("session_id"),
		ElementID: r.URL.Query().Get("element_id"),
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	read, err := h.uploads.ImageStatus(r.Context(), req.SessionID, req.ElementID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get image status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"read": read,
	})
}

func (h *FlexEditorHandler) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.ApplyTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	def, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.templates.ApplyTemplate(r.Context(), req.SessionID, def, req.Overrides)
	h.writeResult(w, result, err, "Failed to apply template")
}

// elementAction serves the editor events that address a single element
func (h *FlexEditorHandler) elementAction(
	op func(ctx context.Context, sessionID, elementID string) (*domain.EditorResult, error),
	message string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}

		var req domain.ElementRequest
		if !decodeJSON(w, r, h.logger, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := op(r.Context(), req.SessionID, req.ElementID)
		h.writeResult(w, result, err, message)
	}
}

// sessionAction serves the editor events that only need the session
func (h *FlexEditorHandler) sessionAction(
	op func(ctx context.Context, sessionID string) (*domain.EditorResult, error),
	message string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}

		var req domain.SessionRequest
		if !decodeJSON(w, r, h.logger, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := op(r.Context(), req.SessionID)
		h.writeResult(w, result, err, message)
	}
}

// writeResult answers an editor event. Rejected events are still a 200
// with changed set to false.
func (h *FlexEditorHandler) writeResult(w http.ResponseWriter, result *domain.EditorResult, err error, message string) {
	if err != nil {
		writeServiceError(w, h.logger, err, message)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
