package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes with bcrypt's default cost. Input is truncated to 72
// bytes, the bcrypt limit, so over-long passwords hash instead of erroring.
func HashPassword(plain string) (string, error) {
	b := []byte(plain)
	if len(b) > 72 {
		b = b[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	b := []byte(plain)
	if len(b) > 72 {
		b = b[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), b) == nil
}
