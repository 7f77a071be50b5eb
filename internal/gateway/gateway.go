// Package gateway holds the gateway contract, the startup registry of gateway
// descriptors and the Provider that resolves a gateway by name or by account.
package gateway

import (
	"context"
	"net/http"
	"strings"

	"paygate-be/internal/account"
	"paygate-be/internal/invoice"
)

// Gateway is one integration with an external payment service provider.
type Gateway interface {
	Name() string
	RequestPayment(ctx context.Context, inv *invoice.Invoice) (*PaymentRequest, error)
}

// AccountProvider loads every account a gateway owns.
type AccountProvider interface {
	LoadAccounts(ctx context.Context) (account.Finder, error)
}

// AccountOwner is implemented by gateways that have named accounts. Gateways
// without an account concept simply do not implement it.
type AccountOwner interface {
	Accounts() AccountProvider
}

// PaymentRequest tells the host how to send the payer to the gateway's
// payment page.
type PaymentRequest struct {
	GatewayName    string            `json:"gateway"`
	AccountName    string            `json:"account"`
	TrackingNumber int64             `json:"tracking_number"`
	Token          string            `json:"token,omitempty"`
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Form           map[string]string `json:"form,omitempty"`
}

// IsPost reports whether the payment page must be opened with a form POST.
func (p *PaymentRequest) IsPost() bool {
	return p.Method == http.MethodPost
}

const nameSuffix = "gateway"

// CompareName is the one rule used wherever gateway names are compared:
// case-insensitive, surrounding space ignored, and a trailing "Gateway" is
// optional, so "saman", "Saman" and "SamanGateway" all match.
func CompareName(a, b string) bool {
	return strings.EqualFold(normalizeName(a), normalizeName(b))
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > len(nameSuffix) && strings.EqualFold(name[len(name)-len(nameSuffix):], nameSuffix) {
		name = name[:len(name)-len(nameSuffix)]
	}
	return name
}
