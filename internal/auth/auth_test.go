package auth

import (
	"testing"
	"time"
)

func TestGate(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	gate := NewGate(hash)

	if err := gate.Check("correct horse battery staple"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := gate.Check("wrong"); err != ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-test-secret-test-abcd", time.Hour)

	token, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := m.Validate(token); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestJWTRejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret-test-secret-test-abcd", time.Hour)

	if err := m.Validate("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}

	other := NewJWTManager("a-different-secret-entirely-zzzz", time.Hour)
	token, _ := other.Generate()
	if err := m.Validate(token); err == nil {
		t.Error("token signed with another secret accepted")
	}

	expired := NewJWTManager("test-secret-test-secret-test-abcd", -time.Hour)
	token, _ = expired.Generate()
	if err := m.Validate(token); err == nil {
		t.Error("expired token accepted")
	}
}
