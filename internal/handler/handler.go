package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kuse-store/internal/middleware"
	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// IDResponse is returned by the create routes.
type IDResponse struct {
	Message string `json:"message,omitempty"`
	ID      string `json:"id"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client.
		return
	}
}

// writeError writes a structured error body tagged with the request ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details []model.FieldError) {
	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// respondError maps a decode or service error to its HTTP status. Failures
// are logged through the request-scoped logger so they carry the request ID.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if reqLogger := zerolog.Ctx(r.Context()); reqLogger.GetLevel() != zerolog.Disabled {
		logger = *reqLogger
	}

	var verrs model.ValidationErrors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		writeError(w, r, http.StatusUnprocessableEntity, model.ErrCodeValidation, "request validation failed", verrs)
	case errors.As(err, &tooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)
	case errors.Is(err, model.ErrInvalidJSON):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "request body must be a JSON object", nil)
	case errors.Is(err, store.ErrUnavailable):
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("document store unavailable")
		writeError(w, r, http.StatusServiceUnavailable, model.ErrCodeStoreUnavailable, "document store is unavailable", nil)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("handler error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", nil)
	}
}

// decodeBody reads a size-limited JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst model.Entity) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return model.Decode(r.Body, dst)
}

// NotFound answers requests for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "route not found", nil)
}

// MethodNotAllowed answers known paths requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", nil)
}
