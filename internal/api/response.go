package api

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// errorBody is the error envelope. Detail is a message string, or a list of
// field errors for validation failures.
type errorBody struct {
	Detail any `json:"detail"`
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, errorBody{Detail: message})
}

// internalError logs err and writes a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path, "request_id", RequestID(r.Context()))
	jsonError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// validationError writes a 422 with the collected field errors.
func validationError(w http.ResponseWriter, errs []FieldError) {
	jsonResponse(w, http.StatusUnprocessableEntity, errorBody{Detail: errs})
}
