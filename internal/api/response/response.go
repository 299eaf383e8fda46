// Package response provides the JSON helpers shared by the ledger API
// handlers, so snapshots, transactions, and error bodies all serialize the
// same way.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error body every endpoint returns: a short
// user-facing message plus optional detail (typically the wrapped sentinel
// chain from the service layer).
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status
// code. A nil data writes no body, which is how the delete endpoints produce
// 204 No Content. Encoding errors are logged but do not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description; details can be an
// error string, additional context, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusUnprocessableEntity, "split rejected", err.Error())
//	response.RespondError(w, http.StatusNotFound, "transaction not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}
