package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/apiclient"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, details)
}

func NewBadRequest(message string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewServiceUnavailable(message string) error {
	return NewDomainError("SERVICE_UNAVAILABLE", message, http.StatusServiceUnavailable, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromAPIError translates a normalized backend failure for the browser.
func FromAPIError(apiErr *apiclient.Error) *DomainError {
	de := &DomainError{Message: apiErr.Message, Err: apiErr}
	switch apiErr.Kind {
	case apiclient.KindUnauthorized:
		de.Code, de.HTTPStatus = "UNAUTHORIZED", http.StatusUnauthorized
	case apiclient.KindValidation:
		de.Code, de.HTTPStatus = "VALIDATION_FAILED", http.StatusUnprocessableEntity
		if len(apiErr.Fields) > 0 {
			de.Details = map[string]any{"fields": apiErr.Fields}
		}
	case apiclient.KindConflict:
		de.Code, de.HTTPStatus = "CONFLICT", apiErr.Status
		if de.HTTPStatus == 0 {
			de.HTTPStatus = http.StatusConflict
		}
	case apiclient.KindNetwork:
		de.Code, de.HTTPStatus = "UPSTREAM_UNAVAILABLE", http.StatusServiceUnavailable
	default:
		de.Code, de.HTTPStatus = "UPSTREAM_ERROR", http.StatusBadGateway
	}
	return de
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		return FromAPIError(apiErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       codeForStatus(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func codeForStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
