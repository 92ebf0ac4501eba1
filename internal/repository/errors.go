package repository

import "errors"

// Сентинельные ошибки слоя хранения. Сервисы переводят их в apperror.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrSessionNotFound = errors.New("session not found")

	ErrGigNotFound = errors.New("gig not found")
	ErrGigNotOpen  = errors.New("gig is not open")

	ErrBidNotFound  = errors.New("bid not found")
	ErrDuplicateBid = errors.New("duplicate bid")
)
