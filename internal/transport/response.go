package transport

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"launchpad-api/internal/apperr"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

var production atomic.Bool

// SetProduction toggles whether error details and stacks are rendered.
func SetProduction(v bool) {
	production.Store(v)
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError is the only place failures are rendered to the wire.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorWithStack(w, err, "")
}

func WriteErrorWithStack(w http.ResponseWriter, err error, stack string) {
	appErr := apperr.As(err)
	resp := ErrorResponse{Message: appErr.Message}
	if resp.Message == "" {
		resp.Message = "Internal server error"
	}
	if !production.Load() {
		resp.Details = appErr.Details
		if resp.Details == nil && appErr.Cause != nil && appErr.Status >= http.StatusInternalServerError {
			resp.Details = appErr.Cause.Error()
		}
		resp.Stack = stack
	}
	WriteJSON(w, appErr.Status, resp)
}
