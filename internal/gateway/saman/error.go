package saman

import (
	"errors"
	"fmt"
)

var (
	ErrNoAccount     = errors.New("saman: no account configured")
	ErrTokenRejected = errors.New("saman: token request rejected")
)

// TokenError carries the bank's reason for refusing a token request.
type TokenError struct {
	Status int
	Code   string
	Desc   string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("saman token rejected: status=%d code=%s desc=%s", e.Status, e.Code, e.Desc)
}

func (e *TokenError) Is(target error) bool { return target == ErrTokenRejected }
