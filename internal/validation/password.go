package validation

import (
	"fmt"
	"unicode"
)

const minPasswordLength = 8

// ValidatePassword проверяет сложность пароля:
// минимум 8 символов, хотя бы одна буква и одна цифра.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("пароль должен содержать минимум %d символов", minPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("пароль должен содержать буквы и цифры")
	}
	return nil
}
