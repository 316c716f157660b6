package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid password")

// Gate verifies the owner password against its configured bcrypt hash. There
// is no registration path: the hash is provisioned in the server config.
type Gate struct {
	hash []byte
}

// NewGate creates a gate over a bcrypt password hash.
func NewGate(bcryptHash string) *Gate {
	return &Gate{hash: []byte(bcryptHash)}
}

// Check verifies a login attempt.
func (g *Gate) Check(password string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for the server config; used by
// the -hash-password setup flag.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
