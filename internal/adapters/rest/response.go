package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

// Error codes
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnknownTemplate = "UNKNOWN_TEMPLATE"
	CodeUnsupportedType = "UNSUPPORTED_MEDIA_TYPE"
	CodeNotConfigured   = "NOT_CONFIGURED"
	CodeInternalError   = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("WARN http: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message, Details: details}})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", formatValidationErrors(err))
}

// writeServiceError maps core errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("WARN http: internal error: %v", err)
	}
	writeError(w, status, detail.Code, detail.Message, nil)
}

func classify(err error) (int, errorDetail) {
	switch {
	case errors.Is(err, domain.ErrUnknownTemplate):
		return http.StatusNotFound, errorDetail{Code: CodeUnknownTemplate, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidPosition):
		return http.StatusBadRequest, errorDetail{Code: CodeInvalidRequest, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errorDetail{Code: CodeInternalError, Message: "request cancelled"}
	default:
		return http.StatusInternalServerError, errorDetail{Code: CodeInternalError, Message: "internal error"}
	}
}

func formatValidationErrors(err error) interface{} {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs := make(map[string]string)
		for _, e := range validationErrors {
			errs[e.Field()] = e.Tag()
		}
		return errs
	}
	return nil
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
