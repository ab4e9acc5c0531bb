package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinPasswordLength   = 8
	MaxPasswordLength   = 128
	MaxCommentLength    = 2000
	MaxSearchTermLength = 200
	MinCouponCodeLength = 3
	MaxCouponCodeLength = 32
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return fmt.Errorf("некорректный формат email")
	}
	return nil
}

// ValidatePassword проверяет базовые требования к паролю.
func ValidatePassword(password string) error {
	return ValidateLength("пароль", password, MinPasswordLength, MaxPasswordLength)
}

// ValidateCouponCode проверяет формат промокода: латиница, цифры, дефис.
func ValidateCouponCode(code string) error {
	if err := ValidateLength("промокод", code, MinCouponCodeLength, MaxCouponCodeLength); err != nil {
		return err
	}
	for _, r := range code {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-", r) {
			return fmt.Errorf("промокод может содержать только латиницу, цифры и дефис")
		}
	}
	return nil
}
