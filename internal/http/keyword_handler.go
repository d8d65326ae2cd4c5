package http

import (
	"net/http"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/logger"
)

type KeywordHandler struct {
	service domain.KeywordService
	logger  logger.Logger
}

func NewKeywordHandler(service domain.KeywordService, logger logger.Logger) *KeywordHandler {
	return &KeywordHandler{
		service: service,
		logger:  logger,
	}
}

func (h *KeywordHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/keywords.list", h.handleList)
	mux.HandleFunc("/api/keywords.get", h.handleGet)
	mux.HandleFunc("/api/keywords.create", h.handleCreate)
	mux.HandleFunc("/api/keywords.update", h.handleUpdate)
	mux.HandleFunc("/api/keywords.delete", h.handleDelete)
	mux.HandleFunc("/api/keywords.match", h.handleMatch)
}

func (h *KeywordHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var req domain.ListKeywordsRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	keywords, err := h.service.ListKeywords(r.Context(), req.Filter())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list keywords")
		return
	}
	if keywords == nil {
		keywords = []*domain.KeywordReply{}
	}

	writeJSON(w, http.StatusOK, domain.ListKeywordsResponse{
		Keywords:   keywords,
		TotalCount: len(keywords),
	})
}

func (h *KeywordHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var req domain.GetKeywordRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	keyword, err := h.service.GetKeyword(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get keyword")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keyword": keyword,
	})
}

func (h *KeywordHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateKeywordRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	reply, sessionID, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	keyword, err := h.service.CreateKeyword(r.Context(), reply, sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create keyword")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"keyword": keyword,
	})
}

func (h *KeywordHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateKeywordRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	reply, sessionID, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	keyword, err := h.service.UpdateKeyword(r.Context(), reply, sessionID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update keyword")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keyword": keyword,
	})
}

func (h *KeywordHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.DeleteKeywordRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteKeyword(r.Context(), req.ID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete keyword")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}

// handleMatch resolves an incoming chat message to its keyword reply
func (h *KeywordHandler) handleMatch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.MatchKeywordRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	keyword, err := h.service.MatchKeyword(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to match keyword")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keyword": keyword,
	})
}
