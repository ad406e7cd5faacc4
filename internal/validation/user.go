// Package validation holds input validation rules shared by the API handlers.
package validation

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 12
	passwordMaxLen = 128
	emailMaxLen    = 254
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)

// ValidateUsername checks length and character rules. Usernames must start
// and end with an alphanumeric character.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return errors.New("Username must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("Username may only contain letters, digits, underscores and dashes, and must start and end with a letter or digit")
	}
	return nil
}

// ValidateEmail checks RFC 5322 shape and the practical 254-character cap.
func ValidateEmail(email string) error {
	if len(email) > emailMaxLen {
		return errors.New("Email cannot be more than 254 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("Invalid email address")
	}
	if strings.HasSuffix(email, ".") || !strings.Contains(email, "@") {
		return errors.New("Invalid email address")
	}
	return nil
}

// ValidatePassword enforces length plus upper/lower/digit/special classes.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < passwordMinLen {
		return errors.New("Password must be at least 12 characters")
	}
	if len(runes) > passwordMaxLen {
		return errors.New("Password cannot be more than 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New("Password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}
	return nil
}
