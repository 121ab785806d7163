package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation          ErrCode = "validation_error"
	CodeNotFound            ErrCode = "not_found"
	CodeUnauthorized        ErrCode = "unauthorized"
	CodeStoreUnavailable    ErrCode = "store_unavailable"
	CodeUpstreamUnavailable ErrCode = "upstream_unavailable"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if len(e.Meta) > 0 {
		msg = fmt.Sprintf("%s (%v)", msg, e.Meta)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Cause }

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrUnauthorized(msg string) error { return &AppError{Code: CodeUnauthorized, Message: msg} }

// ErrStoreUnavailable wraps a durable storage failure. The cause stays in logs only.
func ErrStoreUnavailable(cause error) error {
	return &AppError{Code: CodeStoreUnavailable, Message: "store unavailable", Cause: cause}
}

// ErrUpstreamUnavailable wraps an events provider failure or malformed payload.
func ErrUpstreamUnavailable(cause error) error {
	return &AppError{Code: CodeUpstreamUnavailable, Message: "events provider unavailable", Cause: cause}
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrCode) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
