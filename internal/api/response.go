package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error codes returned in the response envelope.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
	CodeAuthFailed   = "AUTHENTICATION_FAILED"
	CodeMFAFailed    = "MFA_VERIFICATION_FAILED"
)

// Envelope is the common shape of every API response.
type Envelope struct {
	Success    bool           `json:"success"`
	Data       any            `json:"data,omitempty"`
	Error      *ErrorBody     `json:"error,omitempty"`
	Pagination *Pagination    `json:"pagination,omitempty"`
	Metadata   EnvelopeHeader `json:"metadata"`
}

// ErrorBody carries a machine-readable code and a client-safe message.
// Details holds field-level validation errors when present.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Pagination describes a windowed list response.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// EnvelopeHeader is attached to every response.
type EnvelopeHeader struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

// writeEnvelope writes a response envelope with the given status code.
func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	env.Metadata = EnvelopeHeader{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestIDFrom(r),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort write; connection may be closed
	json.NewEncoder(w).Encode(env)
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeEnvelope(w, r, status, Envelope{Success: true, Data: data})
}

// writePage writes a success envelope with pagination.
func writePage(w http.ResponseWriter, r *http.Request, data any, p Pagination) {
	writeEnvelope(w, r, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeEnvelope(w, r, status, Envelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// writeValidationError writes a 400 envelope with field-level details.
func writeValidationError(w http.ResponseWriter, r *http.Request, details map[string]string) {
	writeEnvelope(w, r, http.StatusBadRequest, Envelope{
		Error: &ErrorBody{
			Code:    CodeValidation,
			Message: "request validation failed",
			Details: details,
		},
	})
}

// writeBadRequest writes a 400 error envelope.
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, CodeBadRequest, message)
}

// writeUnauthorized writes a 401 error envelope.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusUnauthorized, CodeUnauthorized, message)
}

// writeForbidden writes a 403 error envelope.
func writeForbidden(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusForbidden, CodeForbidden, message)
}

// writeNotFound writes a 404 error envelope.
func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusNotFound, CodeNotFound, message)
}

// writeInternalError writes a 500 error envelope.
func writeInternalError(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusInternalServerError, CodeInternal, "internal server error")
}
