// Package httpjson centralizes JSON response writing, including the
// documented error envelope from spec §4.7.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
)

// ErrorDetail is the inner object of the error envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the documented top-level error response shape.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// Write serializes data as JSON with the given status code.
func Write(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError renders err as the documented error envelope.
func WriteError(w http.ResponseWriter, err *apierrors.Error) {
	Write(w, err.HTTPStatus(), ErrorEnvelope{
		Error: ErrorDetail{
			Code:    string(err.Kind),
			Message: err.Message,
		},
	})
}
