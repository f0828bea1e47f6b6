package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}

// writeServiceError maps the error taxonomy to a status and a user-safe message.
// fallback is used for anything that is not a validation, not-found or auth error.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, apperrors.ErrNotFound):
		writeError(w, http.StatusNotFound, "Journal entry not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	default:
		if !errors.Is(err, apperrors.ErrPersistence) {
			log.Error("unexpected journal error", zap.Error(err))
		}
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// validationMessage drops the sentinel prefix from messages we produced ourselves.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), apperrors.ErrValidation.Error()+": ")
	if msg == "" || msg == apperrors.ErrValidation.Error() {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
