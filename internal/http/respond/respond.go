package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a success or informational response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// StatusError is an error that knows the HTTP status and client-facing
// message it should be reported with.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

// NewStatusError wraps err for reporting with status and message.
func NewStatusError(status int, message string, err error) *StatusError {
	return &StatusError{Status: status, Message: message, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *StatusError) Unwrap() error { return e.Err }

// Fail writes err as an error envelope. A *StatusError anywhere in the chain
// supplies the status and message; anything else becomes a bare 500.
func Fail(w http.ResponseWriter, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		Error(w, se.Status, se.Message)
		return
	}
	Error(w, http.StatusInternalServerError, "internal server error")
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}
