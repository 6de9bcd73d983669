package auth

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("p@ssw0rd")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" || hash == "p@ssw0rd" {
		t.Fatalf("expected a real hash")
	}
	if err := CheckPassword(hash, "p@ssw0rd"); err != nil {
		t.Fatalf("expected check ok: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected check fail")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := Sign("gura", "admin")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "gura" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Fatalf("expected admin claims")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tok, err := Sign("gura", "user")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify(tok + "x"); err == nil {
		t.Fatalf("expected tampered token to fail")
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := Verify(tok); err == nil {
		t.Fatalf("expected wrong-key token to fail")
	}
}

func TestNonAdminClaims(t *testing.T) {
	c := Claims{Subject: "gura", Role: "user"}
	if c.IsAdmin() {
		t.Fatalf("non-admin role must not pass IsAdmin")
	}
}
