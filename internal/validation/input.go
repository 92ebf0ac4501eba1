package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// Лимиты длины полей. Должны совпадать с CHECK-ограничениями схемы.
const (
	MaxUserNameLength       = 50
	MaxGigTitleLength       = 100
	MaxGigDescriptionLength = 2000
	MaxBidMessageLength     = 1000
)

// ValidateEmail проверяет корректность email адреса.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("некорректный email адрес")
	}
	return nil
}

// ValidateUserName проверяет имя пользователя.
func ValidateUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("имя обязательно")
	}
	if len(name) > MaxUserNameLength {
		return fmt.Errorf("имя не должно превышать %d символов", MaxUserNameLength)
	}
	return nil
}

// ValidateGigTitle проверяет заголовок гига.
func ValidateGigTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок обязателен")
	}
	if len(title) > MaxGigTitleLength {
		return fmt.Errorf("заголовок не должен превышать %d символов", MaxGigTitleLength)
	}
	return nil
}

// ValidateGigDescription проверяет описание гига.
func ValidateGigDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание обязательно")
	}
	if len(description) > MaxGigDescriptionLength {
		return fmt.Errorf("описание не должно превышать %d символов", MaxGigDescriptionLength)
	}
	return nil
}

// ValidateBidMessage проверяет сопроводительное сообщение отклика.
func ValidateBidMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("сообщение обязательно")
	}
	if len(message) > MaxBidMessageLength {
		return fmt.Errorf("сообщение не должно превышать %d символов", MaxBidMessageLength)
	}
	return nil
}

// ValidateAmount проверяет денежную сумму (бюджет гига, цена отклика).
func ValidateAmount(field string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%s должен быть положительным числом", field)
	}
	return nil
}
