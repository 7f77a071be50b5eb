package saman

import (
	"encoding/json"
	"fmt"
	"strings"

	"paygate-be/internal/account"
)

// Account is one Saman merchant terminal.
type Account struct {
	Name       string `json:"-"`
	TerminalID string `json:"terminal_id"`
	Password   string `json:"password"`
}

func (a Account) AccountName() string { return a.Name }

// DecodeAccount reads a gateway_accounts row into an Account.
func DecodeAccount(name string, settings json.RawMessage) (Account, error) {
	acc := Account{Name: name}
	if err := json.Unmarshal(settings, &acc); err != nil {
		return Account{}, err
	}
	if strings.TrimSpace(acc.TerminalID) == "" {
		return Account{}, fmt.Errorf("%w: terminal_id is empty", account.ErrInvalidSettings)
	}
	return acc, nil
}

// NewAccountProvider is the account provider Saman gateways are built with.
func NewAccountProvider(sources ...account.Source[Account]) *account.Provider[Account] {
	return account.NewProvider(Name, sources...)
}
