package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with its bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashPIN hashes a register PIN. PINs are short so they get the same
// bcrypt treatment as passwords rather than a plain digest.
func HashPIN(pin string) (string, error) {
	return HashPassword(pin)
}

// CheckPINHash compares a plaintext PIN with its bcrypt hash
func CheckPINHash(pin, hash string) bool {
	return CheckPasswordHash(pin, hash)
}
