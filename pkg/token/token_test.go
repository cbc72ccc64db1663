package token

import (
	"testing"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "test-secret"

	tokenString, err := GenerateJWT(42, secret, 1)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(tokenString, secret)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.ProfileID != 42 {
		t.Errorf("expected profile id 42, got %d", claims.ProfileID)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(42, "right-secret", 1)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := ValidateJWT(tokenString, "wrong-secret"); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	tokenString, err := GenerateJWT(42, "secret", -1)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := ValidateJWT(tokenString, "secret"); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token", "secret"); err == nil {
		t.Error("expected validation to fail for malformed input")
	}
}
