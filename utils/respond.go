package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-level validation messages.
type ValidationErrorResponse struct {
	Errors []ErrorResponse `json:"errors"`
}

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a plain {message} body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteError writes a {type, message} body.
func WriteError(w http.ResponseWriter, status int, typ, message string) {
	WriteJSON(w, status, ErrorResponse{Type: typ, Message: message})
}

// WriteInternalError reports an unexpected failure, echoing the error text.
func WriteInternalError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Type:    "Internal Server Error",
		Message: err.Error(),
	})
}

// WriteValidationErrors writes a 400 with one message per failed field.
func WriteValidationErrors(w http.ResponseWriter, messages []string) {
	resp := ValidationErrorResponse{}
	for _, m := range messages {
		resp.Errors = append(resp.Errors, ErrorResponse{Message: m})
	}
	WriteJSON(w, http.StatusBadRequest, resp)
}
