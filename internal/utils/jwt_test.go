package utils

import (
	"testing"
	"time"
)

func TestJWT_RoundTrip(t *testing.T) {
	j := NewJWTUtil("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := j.GenerateAccessToken("admin_user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}

	claims, err := j.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned %v", err)
	}
	if claims.Subject != "admin_user" {
		t.Errorf("Subject = %q, want admin_user", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.ExpiresAt.Before(time.Now()) {
		t.Error("ExpiresAt is in the past")
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	j := NewJWTUtil("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	other := NewJWTUtil("different-secret", "", time.Hour, 24*time.Hour)

	token, err := j.GenerateAccessToken("admin_user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestJWT_AccessAndRefreshSecretsAreSeparate(t *testing.T) {
	j := NewJWTUtil("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refresh, err := j.GenerateRefreshToken("admin_user", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned %v", err)
	}

	if _, err := j.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token was accepted as an access token")
	}
	if _, err := j.ValidateRefreshToken(refresh); err != nil {
		t.Errorf("ValidateRefreshToken returned %v", err)
	}
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	j := NewJWTUtil("access-secret", "", -time.Minute, -time.Minute)

	token, err := j.GenerateAccessToken("admin_user", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}

	if _, err := j.ValidateAccessToken(token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestGenerateCode(t *testing.T) {
	code := GenerateCode(12)
	if len(code) != 12 {
		t.Errorf("len(code) = %d, want 12", len(code))
	}
}
