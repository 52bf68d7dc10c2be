package security

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// specialChars is the symbol set a strong password must draw from.
const specialChars = "!@#$%^&*()-_=+[]{}|;:'\",.<>/?`~\\"

// HashPassword produces a salted one-way digest of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a password against a stored digest in constant
// time. Any failure, including a malformed digest, reads as "no match".
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsStrongPassword reports whether the password satisfies the strength
// policy: at least 8 characters with an uppercase letter, a lowercase
// letter, a digit, and a special character. Evaluated before hashing or
// any persistence.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
