package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// APIError is the JSON body of a failed request.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error.
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// FromError maps a pipeline error to a response by its category.
func FromError(err error) *APIError {
	apiErr := &APIError{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
		Details: err.Error(),
	}
	switch errors.CategoryOf(err) {
	case errors.CategoryInput:
		apiErr.Status = http.StatusBadRequest
	case errors.CategoryDocument:
		apiErr.Status = http.StatusUnprocessableEntity
	case errors.CategoryMissing:
		apiErr.Status = http.StatusNotFound
	case errors.CategoryUnsupported:
		apiErr.Status = http.StatusNotImplemented
	default:
		apiErr.Status = http.StatusInternalServerError
		if apiErr.Code == "" {
			apiErr.Code = string(errors.ErrCodeInternal)
		}
	}
	return apiErr
}

func writeError(w http.ResponseWriter, err *APIError) {
	writeJSON(w, err.Status, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
