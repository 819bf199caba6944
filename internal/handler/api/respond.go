// Package api implements the JSON endpoints of the marketplace.
// Every response uses the same envelope: success flag, human-readable
// message, and an optional data payload.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/tlind/bookmarket/internal/domain"
	"github.com/tlind/bookmarket/internal/middleware"
)

// Response is the envelope wrapping every API payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers already sent; nothing more we can do here.
		return
	}
}

// OK writes a success envelope with the given message and payload.
func OK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message, Data: nil})
}

// Error maps a domain error to an HTTP status and failure envelope.
// Internal errors are logged with full detail and surfaced generically.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)

	if code == domain.EINTERNAL {
		middleware.GetLogger(r.Context()).Error("internal error",
			"op", domain.ErrorOp(err),
			"error", err,
		)
	}

	Fail(w, statusFromCode(code), domain.ErrorMessage(err))
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
