package blinks

import (
	"fmt"
	"net/http"
)

// RequestError is a buyer-facing failure with the HTTP status it maps to.
type RequestError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func badRequest(code, message string, err error) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Code: code, Message: message, Err: err}
}

func notFound(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message, Err: err}
}

func forbidden(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message, Err: err}
}

func conflict(message string) *RequestError {
	return &RequestError{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

func internal(message string, err error) *RequestError {
	return &RequestError{Status: http.StatusInternalServerError, Code: "INTERNAL_SERVER_ERROR", Message: message, Err: err}
}
