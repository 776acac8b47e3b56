package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// AppError is the application error carried from repositories and handlers
// to the response boundary.
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
	}
}

func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewUpstreamError(message string) *AppError {
	return &AppError{
		Code:    "UPSTREAM_ERROR",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Server error",
		Err:     err,
	}
}

// RespondWithError writes the wire shape for an error: validation failures
// render as {"errors":[{msg,param}]}, everything else as {"msg":...}.
// Internal details are never included in the response body.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Code == "VALIDATION_ERROR" && len(appErr.Fields) > 0 {
			return c.Status(status).JSON(fiber.Map{"errors": appErr.Fields})
		}
		return c.Status(status).JSON(fiber.Map{"msg": appErr.Message})
	}
	return c.Status(status).JSON(fiber.Map{"msg": err.Error()})
}
