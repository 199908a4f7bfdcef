package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken builds a signed token with the given subject.
func signedToken(t *testing.T, subject string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: subject}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}
	return token
}

// TestGuard_ExtractSubject tests subject extraction from the identity header.
func TestGuard_ExtractSubject(t *testing.T) {
	guard := NewGuard()

	subject, err := guard.ExtractSubject("Bearer " + signedToken(t, "alice"))
	if err != nil {
		t.Fatalf("ExtractSubject() failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("Expected subject alice, got %q", subject)
	}
}

// TestGuard_ExtractSubject_Missing tests missing and empty headers.
func TestGuard_ExtractSubject_Missing(t *testing.T) {
	guard := NewGuard()

	for _, header := range []string{"", "Bearer ", "Bearer    "} {
		_, err := guard.ExtractSubject(header)
		var unauthenticated *UnauthenticatedError
		if !errors.As(err, &unauthenticated) {
			t.Errorf("Expected UnauthenticatedError for header %q, got %v", header, err)
		}
	}
}

// TestGuard_ExtractSubject_NoBearerPrefix tests that a bare token
// without the Bearer prefix is rejected even when it would parse.
func TestGuard_ExtractSubject_NoBearerPrefix(t *testing.T) {
	guard := NewGuard()

	_, err := guard.ExtractSubject(signedToken(t, "alice"))
	var unauthenticated *UnauthenticatedError
	if !errors.As(err, &unauthenticated) {
		t.Fatalf("Expected UnauthenticatedError for bare token, got %v", err)
	}
}

// TestGuard_ExtractSubject_Garbage tests unparseable tokens.
func TestGuard_ExtractSubject_Garbage(t *testing.T) {
	guard := NewGuard()

	_, err := guard.ExtractSubject("Bearer not-a-jwt")
	var unauthenticated *UnauthenticatedError
	if !errors.As(err, &unauthenticated) {
		t.Fatalf("Expected UnauthenticatedError, got %v", err)
	}
	if unauthenticated.Unwrap() == nil {
		t.Error("Expected a parse cause on the error")
	}
}

// TestGuard_ExtractSubject_NoSubject tests tokens without a subject claim.
func TestGuard_ExtractSubject_NoSubject(t *testing.T) {
	guard := NewGuard()

	_, err := guard.ExtractSubject("Bearer " + signedToken(t, ""))
	var unauthenticated *UnauthenticatedError
	if !errors.As(err, &unauthenticated) {
		t.Errorf("Expected UnauthenticatedError for empty subject, got %v", err)
	}
}

// TestGuard_AuthorizeSelfService tests the ownership check.
func TestGuard_AuthorizeSelfService(t *testing.T) {
	guard := NewGuard()

	if err := guard.AuthorizeSelfService("alice", "alice"); err != nil {
		t.Errorf("Expected matching subject to pass, got %v", err)
	}

	err := guard.AuthorizeSelfService("alice", "bob")
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("Expected ForbiddenError, got %v", err)
	}
	if forbidden.RequestedUserID != "alice" {
		t.Errorf("Expected requested user alice on the error, got %q", forbidden.RequestedUserID)
	}
}
