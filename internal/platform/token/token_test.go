package token

import (
	"testing"
	"time"
)

func TestGenerateValidate_RoundTrip(t *testing.T) {
	svc := NewService("test-secret", 7*24*time.Hour)

	signed, err := svc.Generate("user-1", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	past := time.Now().Add(-48 * time.Hour)
	svc.now = func() time.Time { return past }
	signed, err := svc.Generate("user-1", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Validate(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidate_WrongKey(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	signed, err := issuer.Generate("user-1", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Validate(signed); err == nil {
		t.Fatal("expected error for token signed with another key")
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
