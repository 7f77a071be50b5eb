package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrGatewayNotFound  = errors.New("gateway not found")
	ErrAmbiguousGateway = errors.New("more than one gateway registered with the same name")
	ErrAccountNotFound  = errors.New("no gateway found with the account name")
)

// NotFoundError is returned when no usable gateway is registered under Name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gateway %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrGatewayNotFound }

// AmbiguousError signals a composition defect: Name is registered more than once.
type AmbiguousError struct {
	Name  string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("more than one gateway with the name %q found (%d)", e.Name, e.Count)
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousGateway }

// AccountNotFoundError is returned when no registered gateway owns AccountName.
type AccountNotFoundError struct {
	AccountName string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("no gateway found with account name %q", e.AccountName)
}

func (e *AccountNotFoundError) Is(target error) bool { return target == ErrAccountNotFound }
