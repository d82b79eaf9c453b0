package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes identify the kind of an AppError.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAlreadyLiked    = "ALREADY_LIKED"
	CodeNotLiked        = "NOT_LIKED"
	CodeCommentNotFound = "COMMENT_NOT_FOUND"
	CodeQueryFailed     = "QUERY_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError represents a custom application error.
// Key is the single JSON field the message is reported under.
type AppError struct {
	Code    string
	Key     string
	Message string
	Fields  map[string]string
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

// Status maps the error kind to an HTTP status code.
func (e *AppError) Status() int {
	switch e.Code {
	case CodeNotFound, CodeQueryFailed:
		return fiber.StatusNotFound
	case CodeValidation, CodeAlreadyLiked, CodeNotLiked:
		return fiber.StatusBadRequest
	case CodeUnauthorized, CodeCommentNotFound:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Body is the JSON payload sent to clients for this error.
func (e *AppError) Body() fiber.Map {
	if e.Code == CodeValidation && len(e.Fields) > 0 {
		body := make(fiber.Map, len(e.Fields))
		for k, v := range e.Fields {
			body[k] = v
		}
		return body
	}
	key := e.Key
	if key == "" {
		key = "error"
	}
	return fiber.Map{key: e.Message}
}

// Predefined error constructors

func NewNotFoundError(key, message string) *AppError {
	return &AppError{Code: CodeNotFound, Key: key, Message: message}
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Key: "error", Message: "Validation failed", Fields: fields}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Key: "notAuthorized", Message: message}
}

func NewAlreadyLikedError() *AppError {
	return &AppError{Code: CodeAlreadyLiked, Key: "alreadyLiked", Message: "You have already liked this post"}
}

// NewNotLikedError keeps the alreadyLiked key existing clients read.
func NewNotLikedError() *AppError {
	return &AppError{Code: CodeNotLiked, Key: "alreadyLiked", Message: "You haven't liked this post"}
}

func NewCommentNotFoundError() *AppError {
	return &AppError{Code: CodeCommentNotFound, Key: "noComment", Message: "Comment not found"}
}

func NewQueryFailedError(key string, err error) *AppError {
	return &AppError{Code: CodeQueryFailed, Key: key, Message: "Post not found", Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Key: "error", Message: "Internal server error", Err: err}
}

// IsCode reports whether err is an AppError of the given kind.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes err as a JSON body. AppErrors choose their own status;
// anything else is reported as an internal error without details.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	return c.Status(appErr.Status()).JSON(appErr.Body())
}
