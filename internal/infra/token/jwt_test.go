package token

import (
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	mgr := NewManager("unit-test-secret")

	tok, err := mgr.Sign("admin", time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := mgr.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "admin" || claims.Scope != ScopeHistoryRead {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a").Sign("admin", time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := NewManager("secret-b").Verify(tok); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	mgr := NewManager("unit-test-secret")
	tok, err := mgr.Sign("admin", -time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := mgr.Verify(tok); err == nil {
		t.Error("expired token must not verify")
	}
}
