// Package response writes the JSON envelope every endpoint answers with:
//
//	{"status":404,"message":"Order not found or already assigned"}
//	{"status":200,"data":{"deletedCount":1}}
//	{"status":500,"message":"Something went wrong","error":"connection refused"}
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Write sends body with status. A zero body.Status takes status.
func Write(w http.ResponseWriter, status int, body Envelope) {
	if body.Status == 0 {
		body.Status = status
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error sends a message-only envelope.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Message: message})
}

// Upstream reports a failed dependency as 500, passing its error text on.
func Upstream(w http.ResponseWriter, message string, err error) {
	body := Envelope{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	Write(w, http.StatusInternalServerError, body)
}

// ValidationError sends 400 with a field → message map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	Write(w, http.StatusBadRequest, Envelope{Message: "Validation failed", Errors: errs})
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}
