package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yacobolo/designsync/internal/apperr"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Matches int    `json:"matches,omitempty"`
}

func errorBody(code, msg string) errResponse {
	return errResponse{Error: msg, Code: code}
}

// statusFor maps an engine error to an HTTP status and a stable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrAmbiguous):
		return http.StatusConflict, "ambiguous"
	case errors.Is(err, apperr.ErrInvalidPath):
		return http.StatusBadRequest, "invalid_path"
	case errors.Is(err, apperr.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, apperr.ErrUnparsable):
		return http.StatusUnprocessableEntity, "unparsable"
	}
	return http.StatusInternalServerError, "internal"
}

// writeError writes err with its mapped status. Internal errors are logged
// and their text is not exposed.
func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, status, errorBody(code, "internal error"))
		return
	}

	body := errorBody(code, err.Error())
	var amb *apperr.AmbiguousError
	if errors.As(err, &amb) {
		body.Matches = amb.Matches
	}
	writeJSON(w, status, body)
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidRequest(err)
	}
	return nil
}
