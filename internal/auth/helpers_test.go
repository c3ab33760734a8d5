package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func claimsFor(sub, role string, exp time.Time) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}
