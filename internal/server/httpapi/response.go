package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/jumpaku/accountd/internal/apperr"
)

// failureBody is the JSON shape of every failed response.
type failureBody struct {
	Tag     string      `json:"tag"`
	Type    apperr.Kind `json:"type"`
	Message string      `json:"message"`
	Detail  []string    `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusOK, body)
}

// writeFailure maps the error kind to its HTTP status and renders the tagged
// failure body.
func writeFailure(w http.ResponseWriter, err *apperr.Error) {
	writeJSON(w, err.Kind.HTTPStatus(), failureBody{
		Tag:     "Failure",
		Type:    err.Kind,
		Message: err.Message,
		Detail:  err.Details,
	})
}
