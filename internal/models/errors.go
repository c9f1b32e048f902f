package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError carries a machine-readable code alongside the message so the
// transport layer can pick a status without string matching.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", Err: err}
}

// RespondWithError writes err as a JSON ErrorResponse with the given status.
// Wrapped causes of internal errors surface in details, never in error.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	resp := ErrorResponse{Error: err.Error()}

	var appErr *AppError
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
		resp.Code = appErr.Code
		if appErr.Err != nil {
			resp.Details = appErr.Err.Error()
		}
	}
	return c.Status(status).JSON(resp)
}
