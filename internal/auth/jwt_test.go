package auth

import (
	"testing"
	"time"

	"github.com/albertomt/cricheck/internal/model"
)

func TestNewAndValidateSessionToken(t *testing.T) {
	secret := "test-secret-key"

	token, sessionID, expiresAt, err := NewSessionToken(secret, 1, "admin", model.RoleAdmin)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if sessionID == "" {
		t.Fatal("expected non-empty session id")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("expected user_id 1, got %d", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", claims.Username)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", claims.Role)
	}
	if claims.SessionID() != sessionID {
		t.Errorf("expected session id %q, got %q", sessionID, claims.SessionID())
	}

	diff := time.Until(expiresAt) - SessionExpiry
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("session expiry too far from expected: diff=%v", diff)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, _, _ := NewSessionToken("secret1", 1, "admin", model.RoleAdmin)

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestSessionIDsUnique(t *testing.T) {
	_, a, _, _ := NewSessionToken("s", 1, "u", model.RoleVolunteer)
	_, b, _, _ := NewSessionToken("s", 1, "u", model.RoleVolunteer)
	if a == b {
		t.Error("expected unique session ids")
	}
}
