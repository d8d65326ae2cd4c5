package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lineoa/keywordconsole/internal/domain"
	"github.com/lineoa/keywordconsole/pkg/logger"
)

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error to its HTTP status. Unexpected
// errors are logged and reported with the generic message.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, message string) {
	var (
		notFound    *domain.ErrNotFound
		validation  domain.ValidationError
		conflict    *domain.ErrKeywordConflict
		rateLimited *domain.ErrRateLimited
	)

	switch {
	case errors.As(err, &notFound):
		WriteJSONError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &validation):
		WriteJSONError(w, validation.Message, http.StatusBadRequest)
	case errors.As(err, &conflict):
		WriteJSONError(w, conflict.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrImageReadInProgress):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	case errors.As(err, &rateLimited):
		w.Header().Set("Retry-After", strconv.Itoa(rateLimited.RetryAfter))
		WriteJSONError(w, rateLimited.Error(), http.StatusTooManyRequests)
	default:
		log.WithField("error", err.Error()).Error(message)
		WriteJSONError(w, message, http.StatusInternalServerError)
	}
}

// decodeJSON decodes the request body into v, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, log logger.Logger, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
