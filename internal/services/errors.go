// internal/services/errors.go
package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these onto
// HTTP statuses and localized messages with errors.Is; anything else is
// treated as a gateway failure.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("stock must not be negative")
	ErrNegativePrice   = errors.New("price must not be negative")

	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidDescription = errors.New("description must not be empty")

	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidCurrency = errors.New("unsupported currency")
)
