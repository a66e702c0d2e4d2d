// File: /utils/validators.go
package utils

import (
	"regexp"
	"unicode"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// IsValidUsername accepts letters, digits and @/./+/-/_ characters.
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// IsValidPassword rejects passwords made only of digits.
func IsValidPassword(password string) bool {
	for _, char := range password {
		if !unicode.IsDigit(char) {
			return true
		}
	}
	return false
}
