package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	subject := uuid.New()

	token, err := svc.Issue(subject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != subject {
		t.Errorf("expected subject %s, got %s", subject, got)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute)
	token, err := svc.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret-a"), time.Hour)
	verifier := NewTokenService([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour)
	_, err := svc.Verify("not.a.token")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
