package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword safely compares a bcrypt hash and a plain password. Users
// are provisioned out-of-band, so the application only ever verifies.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
