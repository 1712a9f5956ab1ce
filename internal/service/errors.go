package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeTechnical          = "TECHNICAL_ERROR"
)

const TechnicalErrorMessage = "Technical error. Please try again later."

// BusinessError несёт код и сообщение, которое можно показать пользователю.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource string, id any, message string) *BusinessError {
	return NewBusinessError(CodeNotFound, message,
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewValidationError(field, message string) *BusinessError {
	return NewBusinessError(CodeValidation, message, ToDetail("field", field))
}

func NewForbidden(message string) *BusinessError {
	return NewBusinessError(CodeForbidden, message)
}

func NewTechnicalError(operation string, err error) *BusinessError {
	busErr := NewBusinessError(CodeTechnical, TechnicalErrorMessage, ToDetail("operation", operation))
	busErr.Err = err
	return busErr
}

// AsBusinessError достаёт BusinessError из цепочки; прочие ошибки считаются техническими.
func AsBusinessError(err error) *BusinessError {
	if err == nil {
		return nil
	}
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr
	}
	return NewTechnicalError("unknown", err)
}

func IsCode(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}
