package utils

import (
	"strings"
	"unicode"
)

// IsValidEmail does a cheap sanity check on the address shape. Real
// verification happens when the account holder first signs in.
func IsValidEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// IsComplexPassword checks if the password meets the complexity requirements.
func IsComplexPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}
