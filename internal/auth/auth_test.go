package auth

import (
	"testing"

	"hvac-office-api/internal/model"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "s3cret-password") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken(42, model.RoleSecretary, "test-secret")
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	claims, err := ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: got %d", claims.UserID)
	}
	if claims.Role != model.RoleSecretary {
		t.Errorf("role: got %q", claims.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, _ := MakeToken(1, model.RoleAdmin, "secret-a")
	if _, err := ParseToken(tok, "secret-b"); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseToken(raw, "test-secret"); err == nil {
			t.Errorf("accepted %q", raw)
		}
	}
}
