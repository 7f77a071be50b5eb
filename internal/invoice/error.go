package invoice

import "errors"

var (
	// -- Programmer errors --
	ErrNilBuilder = errors.New("invoice builder is nil")

	// -- Validation --
	ErrInvalidTrackingNumber = errors.New("tracking number must be greater than zero")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidCallbackURL    = errors.New("callback url must be an absolute http(s) url")
	ErrGatewayNotSelected    = errors.New("no gateway or gateway account selected")
)
