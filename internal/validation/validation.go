// Package validation holds the pure input checks shared by the services:
// password strength, username normalisation and numeric field parsing.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercprd/internal/apperrors"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// IsStrongPassword reports whether s has at least MinPasswordLength
// characters, at least one letter and at least one digit.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// NormalizeUsername lower-cases a username. Blank names are rejected.
func NormalizeUsername(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", apperrors.ErrInvalidUsername
	}
	return strings.ToLower(s), nil
}

// ParsePrice parses a non-negative, finite real number.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: price %q", apperrors.ErrInvalidNumericInput, s)
	}
	return v, nil
}

// ParseQuantity parses a non-negative integer.
func ParseQuantity(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: quantity %q", apperrors.ErrInvalidNumericInput, s)
	}
	return v, nil
}
