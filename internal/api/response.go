package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

type errorResponse struct {
	Error string         `json:"error"`
	Code  pkgerrors.Code `json:"code"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		// Encoding only fails when the client has gone away.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, code pkgerrors.Code, message string) {
	jsonResponse(w, status, errorResponse{Error: message, Code: code})
}

// writeError maps an engine error to its HTTP status. Storage failures only
// expose the generic public message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)

	message := meta.PublicMessage
	if typed := pkgerrors.As(err); typed != nil && code != pkgerrors.CodeStorageFailure {
		message = typed.Message()
	}
	if meta.HTTPStatus >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("code", string(code)).Msg("request failed")
	}

	jsonError(w, meta.HTTPStatus, code, message)
}
