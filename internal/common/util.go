package common

import (
	"fmt"
	"unicode"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to remove passwords from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// ValidatePassword applies the server's password complexity rule locally so
// cheap failures never reach the network: at least 8 characters, with at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasLetter {
		return fmt.Errorf("%w: password must contain a letter", ErrValidation)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain a digit", ErrValidation)
	}
	return nil
}

// MaskPhone hides the middle digits of a phone number for display,
// e.g. "13800000000" -> "138****0000". Short values are returned unchanged.
func MaskPhone(phone string) string {
	if len(phone) < 8 {
		return phone
	}
	return phone[:3] + "****" + phone[len(phone)-4:]
}
