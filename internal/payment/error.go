package payment

import "errors"

var ErrInvalidRequest = errors.New("invalid payment request")
