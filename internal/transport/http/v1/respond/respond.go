package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/go-chi/chi/v5/middleware"
)

// JSON writes a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error maps a service error onto the standardised error payload. Unknown
// errors become a generic 500; internals are never exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled service error", "error", err, "path", r.URL.Path)
		appErr = apperror.New(apperror.CodeInternalError, "Something went wrong")
	}

	JSON(w, statusFor(appErr.Code), apperror.ErrorResponse{
		Error:         appErr.Code,
		Message:       appErr.Message,
		CorrelationID: middleware.GetReqID(r.Context()),
	})
}

func statusFor(code string) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeInsufficientStock:
		return http.StatusConflict
	case apperror.CodeOrderNumberExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
