package wallet

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("request is not in a state that allows this action")
)
