package account

import "errors"

var (
	ErrAccountNotFound  = errors.New("gateway account not found")
	ErrInvalidSettings  = errors.New("invalid gateway account settings")
	ErrFailedLoadSource = errors.New("failed to load gateway accounts")
)
