package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateTokenPair(t *testing.T) {
	m := NewJWTManager("test-secret", "course-market", time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID)
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}

	claims, err := m.AccessClaims(pair.AccessToken.Raw)
	if err != nil {
		t.Fatalf("AccessClaims() unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims user id = %s, want %s", claims.UserID, userID)
	}

	if !m.TokenType(pair.AccessToken, AccessTokenType) {
		t.Error("access token not recognized as access type")
	}
	if m.TokenType(pair.RefreshToken, AccessTokenType) {
		t.Error("refresh token recognized as access type")
	}
	if !m.TokenType(pair.RefreshToken, RefreshTokenType) {
		t.Error("refresh token not recognized as refresh type")
	}
}

func TestAccessClaimsRejectsRefreshToken(t *testing.T) {
	m := NewJWTManager("test-secret", "course-market", time.Minute, time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}
	if _, err := m.AccessClaims(pair.RefreshToken.Raw); err == nil {
		t.Fatal("AccessClaims() accepted a refresh token")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	m := NewJWTManager("test-secret", "course-market", time.Minute, time.Hour)
	other := NewJWTManager("other-secret", "course-market", time.Minute, time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New())
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}
	if _, err := other.Parse(pair.AccessToken.Raw); err == nil {
		t.Fatal("Parse() accepted token signed with another key")
	}
}
