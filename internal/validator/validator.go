package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
	
	"github.com/jplus/jstore-api/internal/util"
)

const (
	MinPhoneDigits      = 4
	MinCustomRequestLen = 10
	MaxCustomRequestLen = 2000
)

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharsPattern  = regexp.MustCompile(`^[0-9+()\-.\s]+$`)
	printNumberPattern = regexp.MustCompile(`^[0-9]{1,2}$`)
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := utf8.RuneCountInString(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}
	
	return nil
}

func ValidateEmail(value string) error {
	if err := ValidateString(value, 6, 200); err != nil {
		return err
	}
	
	if !emailPattern.MatchString(value) {
		return fmt.Errorf("is not a valid email address")
	}
	
	return nil
}

func ValidateCustomerName(value string) error {
	value = strings.TrimSpace(value)
	if err := ValidateString(value, 2, 100); err != nil {
		return err
	}
	
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && !strings.ContainsRune("'-.", r) {
			return fmt.Errorf("must contain only letters or spaces")
		}
	}
	
	return nil
}

// ValidatePhone accepts any common notation as long as it carries enough
// digits for an order code.
func ValidatePhone(value string) error {
	if !phoneCharsPattern.MatchString(value) {
		return fmt.Errorf("must contain only digits, spaces and + ( ) - .")
	}
	
	if !util.HasMinDigits(value, MinPhoneDigits) {
		return fmt.Errorf("must contain at least %d digits", MinPhoneDigits)
	}
	
	return nil
}

func ValidateCustomRequest(value string) error {
	return ValidateString(strings.TrimSpace(value), MinCustomRequestLen, MaxCustomRequestLen)
}

func ValidatePrintName(value string) error {
	return ValidateString(value, 0, 20)
}

func ValidatePrintNumber(value string) error {
	if value == "" {
		return nil
	}
	
	if !printNumberPattern.MatchString(value) {
		return fmt.Errorf("must be a number from 0 to 99")
	}
	
	return nil
}
