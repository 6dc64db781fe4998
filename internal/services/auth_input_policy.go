package services

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrAuthPasswordWeak       = errors.New("auth password too weak")
)

var (
	passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
	passwordUpperRegex  = regexp.MustCompile(`\p{Lu}`)
	passwordLowerRegex  = regexp.MustCompile(`\p{Ll}`)
	passwordDigitRegex  = regexp.MustCompile(`\d`)
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func ValidatePasswordStrength(password string) error {
	if !passwordLengthRegex.MatchString(password) ||
		!passwordUpperRegex.MatchString(password) ||
		!passwordLowerRegex.MatchString(password) ||
		!passwordDigitRegex.MatchString(password) {
		return ErrAuthPasswordWeak
	}
	return nil
}
