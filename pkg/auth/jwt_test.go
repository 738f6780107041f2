package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "khaya-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)

	tokenString, err := svc.GenerateToken("ops@khaya.id", []string{RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.Subject != "ops@khaya.id" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "ops@khaya.id")
	}
	if !claims.HasRole(RoleAdmin) {
		t.Errorf("Roles = %v, want admin", claims.Roles)
	}
	if claims.Issuer != "khaya-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "khaya-test")
	}
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("NewJWTService() expected error without key material")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Expiration: -1 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken("u1", []string{RoleAnalyst})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "someone-else", Expiration: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	validator, err := NewJWTService(JWTConfig{Secret: "shared", Issuer: "khaya", Expiration: time.Minute})
	if err != nil {
		t.Fatal(err)
	}

	tokenString, err := issuer.GenerateToken("u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := validator.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected issuer mismatch error")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1, _ := NewJWTService(JWTConfig{Secret: "secret-one", Expiration: 15 * time.Minute})
	svc2, _ := NewJWTService(JWTConfig{Secret: "secret-two", Expiration: 15 * time.Minute})

	tokenString, err := svc1.GenerateToken("u1", []string{RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestValidationOnlyMode(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	svc, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	if _, err := svc.GenerateToken("u1", nil); !errors.Is(err, ErrNoSigningKey) {
		t.Errorf("GenerateToken() error = %v, want ErrNoSigningKey", err)
	}

	hmac := newTestJWTService(t)
	tokenString, _ := hmac.GenerateToken("u1", []string{RoleAdmin})
	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Error("ValidateToken() accepted an HS256 token in RS256 mode")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin}}

	if !claims.HasRole(RoleAdmin) {
		t.Error("HasRole(RoleAdmin) = false, want true")
	}
	if claims.HasRole(RoleAnalyst) {
		t.Error("HasRole(RoleAnalyst) = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{Roles: []string{RoleAnalyst}}
	got, ok := ClaimsFromContext(ContextWithClaims(ctx, expected))
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got != expected {
		t.Errorf("ClaimsFromContext() = %v, want %v", got, expected)
	}
}
