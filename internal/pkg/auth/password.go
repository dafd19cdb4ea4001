package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashing.
const BcryptCost = 10

// DefaultPasswordFallback is used when a guardian account is provisioned
// without a usable birth date.
const DefaultPasswordFallback = "123456"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// DerivePassword builds the initial guardian password from the student's birth
// date: every non-digit character is stripped ("2019-05-13" -> "20190513").
// Empty input, or input without any digit, falls back to the fixed default.
// No minimum length is enforced; the raw value is hashed before storage and
// communicated to the guardian out-of-band.
func DerivePassword(birthDate string) string {
	var b strings.Builder
	for _, r := range birthDate {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultPasswordFallback
	}
	return b.String()
}
