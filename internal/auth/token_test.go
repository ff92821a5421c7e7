package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:        "user-1",
		Role:      domain.RolePetugas,
		PetugasID: "PTG-001",
		Nama:      "Budi",
		Aktif:     true,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, exp, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if remaining := time.Until(exp); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry window: %v", remaining)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != domain.RolePetugas || claims.PetugasID != "PTG-001" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Fatal("malformed token must not verify")
	}
}
