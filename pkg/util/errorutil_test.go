package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/apiclient"
)

func TestToDomainErrorFromAPIError(t *testing.T) {
	cases := []struct {
		kind   apiclient.ErrorKind
		status int
		code   string
		http   int
	}{
		{apiclient.KindUnauthorized, 401, "UNAUTHORIZED", http.StatusUnauthorized},
		{apiclient.KindValidation, 422, "VALIDATION_FAILED", http.StatusUnprocessableEntity},
		{apiclient.KindConflict, 409, "CONFLICT", http.StatusConflict},
		{apiclient.KindConflict, 404, "CONFLICT", http.StatusNotFound},
		{apiclient.KindServer, 500, "UPSTREAM_ERROR", http.StatusBadGateway},
		{apiclient.KindNetwork, 0, "UPSTREAM_UNAVAILABLE", http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &apiclient.Error{Kind: tc.kind, Status: tc.status, Message: "boom"})
			de := ToDomainError(err)
			if de.Code != tc.code || de.HTTPStatus != tc.http || de.Message != "boom" {
				t.Fatalf("unexpected domain error %+v", de)
			}
		})
	}
}

func TestValidationFieldsBecomeDetails(t *testing.T) {
	de := ToDomainError(&apiclient.Error{
		Kind:    apiclient.KindValidation,
		Status:  422,
		Message: "email: invalid",
		Fields:  map[string]string{"email": "invalid"},
	})
	fields, ok := de.Details["fields"].(map[string]string)
	if !ok || fields["email"] != "invalid" {
		t.Fatalf("unexpected details %+v", de.Details)
	}
}

func TestToDomainErrorFromFiberError(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusForbidden, "insufficient role"))
	if de.Code != "FORBIDDEN" || de.HTTPStatus != http.StatusForbidden {
		t.Fatalf("unexpected domain error %+v", de)
	}
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("secret detail"))
	if de.HTTPStatus != http.StatusInternalServerError || de.Message != "internal server error" {
		t.Fatalf("unexpected domain error %+v", de)
	}
	if ToDomainError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
