package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// CheckHash rejects values that are not bcrypt hashes, such as a plaintext
// password placed in OPERATOR_PASSWORD_HASH by mistake.
func CheckHash(hashed string) error {
	if _, err := bcrypt.Cost([]byte(hashed)); err != nil {
		return fmt.Errorf("operator password hash: %w", err)
	}
	return nil
}
