package apperror

import (
	"errors"
	"net/http"
)

// AppError is an error that knows its HTTP status. Services return
// them and the response layer writes Code and Message straight into
// the envelope.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError points a validation message at one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds an error with an explicit status code.
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewBadRequestError marks input the handler could not accept.
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// NewNotFoundError names the thing that was looked up and missed,
// such as "Product" or "Sale".
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found")
}

// NewConflictError marks a uniqueness clash, such as a duplicate
// product code.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

// NewUnprocessableError marks a well-formed request that breaks a
// business rule, such as a credit sale without a customer.
func NewUnprocessableError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message)
}

// Auth failures share fixed messages so callers cannot probe which
// part of a credential was wrong.
var (
	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, "Invalid credentials")
	ErrInvalidToken       = NewAppError(http.StatusUnauthorized, "Invalid token")
)

// IsAppError reports whether err carries an AppError anywhere in its
// chain.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError unwraps err to its AppError; anything else becomes a
// 500 carrying the original message.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(http.StatusInternalServerError, err.Error())
}
