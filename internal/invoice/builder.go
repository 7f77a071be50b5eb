package invoice

import (
	"fmt"
	"net/url"
	"strings"
)

// Builder collects everything a host sets before the invoice is submitted.
// Gateway modules extend it through AddOrUpdateProperty and ChangeProperties
// and report invalid input through AddError; the first error is returned by Build.
type Builder struct {
	trackingNumber int64
	amount         int64
	callbackURL    string
	gatewayName    string
	accountName    string
	properties     *Properties
	err            error
}

func NewBuilder() *Builder {
	return &Builder{properties: NewProperties()}
}

func (b *Builder) SetTrackingNumber(n int64) *Builder {
	b.trackingNumber = n
	return b
}

func (b *Builder) UseRandomTrackingNumber() *Builder {
	b.trackingNumber = GenerateTrackingNumber()
	return b
}

func (b *Builder) SetAmount(amount int64) *Builder {
	b.amount = amount
	return b
}

func (b *Builder) SetCallbackURL(callbackURL string) *Builder {
	b.callbackURL = strings.TrimSpace(callbackURL)
	return b
}

// SetGateway selects the gateway by its registered name.
func (b *Builder) SetGateway(name string) *Builder {
	b.gatewayName = strings.TrimSpace(name)
	return b
}

// UseAccount selects the gateway account. When no gateway name is set the
// gateway owning this account is used.
func (b *Builder) UseAccount(name string) *Builder {
	b.accountName = strings.TrimSpace(name)
	return b
}

func (b *Builder) AddOrUpdateProperty(key string, value any) *Builder {
	b.properties.Set(key, value)
	return b
}

func (b *Builder) ChangeProperties(fn func(items map[string]any)) *Builder {
	b.properties.Change(fn)
	return b
}

// Properties exposes the bag being built, mostly for gateway modules' tests.
func (b *Builder) Properties() *Properties {
	return b.properties
}

func (b *Builder) AddError(err error) *Builder {
	if b.err == nil && err != nil {
		b.err = err
	}
	return b
}

func (b *Builder) GatewayName() string { return b.gatewayName }

func (b *Builder) AccountName() string { return b.accountName }

func (b *Builder) Build() (*Invoice, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.trackingNumber <= 0 {
		return nil, ErrInvalidTrackingNumber
	}
	if b.amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := validateCallbackURL(b.callbackURL); err != nil {
		return nil, err
	}
	if b.gatewayName == "" && b.accountName == "" {
		return nil, ErrGatewayNotSelected
	}

	return &Invoice{
		TrackingNumber:     b.trackingNumber,
		Amount:             b.amount,
		CallbackURL:        b.callbackURL,
		GatewayName:        b.gatewayName,
		GatewayAccountName: b.accountName,
		Properties:         b.properties,
	}, nil
}

func validateCallbackURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCallbackURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidCallbackURL
	}
	return nil
}
