// Package validation holds input format checks shared by the HTTP handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9._]{3,30}$`)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// ValidateUsername validates the account name format. Usernames follow the
// NIP-derived convention: lowercase letters, digits, dots and underscores.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username harus 3-30 karakter dan hanya huruf kecil, angka, titik, atau garis bawah")
	}
	if strings.HasPrefix(username, ".") || strings.HasPrefix(username, "_") ||
		strings.HasSuffix(username, ".") || strings.HasSuffix(username, "_") {
		return fmt.Errorf("username tidak boleh diawali atau diakhiri titik atau garis bawah")
	}
	return nil
}

// ValidatePassword enforces the password length bounds.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		return fmt.Errorf("password minimal %d karakter", minPasswordLength)
	}
	if n > maxPasswordLength {
		return fmt.Errorf("password maksimal %d karakter", maxPasswordLength)
	}
	return nil
}
