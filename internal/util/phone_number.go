package util

import (
	"strings"
)

// PhoneDigits strips every non-digit character: "+351 912-345" -> "351912345".
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	
	return b.String()
}

// LastDigits returns at most the last n characters of digits.
func LastDigits(digits string, n int) string {
	return lastChars(digits, n)
}

// HasMinDigits reports whether phone carries at least n digits.
func HasMinDigits(phone string, n int) bool {
	return len(PhoneDigits(phone)) >= n
}
