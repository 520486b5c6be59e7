package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := tm.Verify(signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestTokenManager_Tampered(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.Issue("alice")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three-segment token, got %d segments", len(parts))
	}

	// Payload swapped for a different subject, signature untouched.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "mallory",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedSigned, err := forged.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	forgedParts := strings.Split(forgedSigned, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := tm.Verify(tampered); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for tampered payload, got %v", err)
	}

	if _, err := tm.Verify("not-a-token"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}

func TestTokenManager_MissingSubject(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noSub.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := tm.Verify(signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for missing subject, got %v", err)
	}
}
