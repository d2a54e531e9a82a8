package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON body sent for every failed request: a stable
// machine-readable code, a human-readable message and the server timestamp.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Error     string            `json:"error"`
	Details   map[string]string `json:"details,omitempty"` // field validation failures
	Timestamp time.Time         `json:"timestamp"`
}

// ValidationHelper provides shared struct validation.
type ValidationHelper struct {
	validator *validator.Validate
}

func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors.
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse writes a JSON error response.
func SendErrorResponse(w http.ResponseWriter, code, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Code:      code,
		Error:     message,
		Timestamp: time.Now().UTC(),
	}
	if fieldErrs, ok := validationErr.(validator.ValidationErrors); ok {
		resp.Details = make(map[string]string)
		for _, err := range fieldErrs {
			resp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(resp)
}
