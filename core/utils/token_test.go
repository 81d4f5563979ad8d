package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "planwise-test")
	groupID := uuid.New()

	token, expiresAt, err := m.GenerateGroupToken(groupID, "hikers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %s", expiresAt)
	}

	claims, err := m.ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.GroupID != groupID || claims.GroupName != "hikers" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, "planwise-test")
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.GenerateGroupToken(uuid.New(), "hikers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateAndParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret", time.Hour, "planwise-test")
	verifier := NewTokenManager("other", time.Hour, "planwise-test")

	token, _, err := issuer.GenerateGroupToken(uuid.New(), "hikers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ValidateAndParseToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}
