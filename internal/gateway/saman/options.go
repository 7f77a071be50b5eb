package saman

import (
	"fmt"
	"strings"

	"paygate-be/internal/gateway"
	"paygate-be/internal/invoice"
)

// Options configures an invoice for Saman. Obtain it with For and chain the
// setters; invalid arguments are recorded on the builder and surface from
// Build.
type Options struct {
	b *invoice.Builder
}

// For wraps b. A nil builder is a caller bug and panics.
func For(b *invoice.Builder) *Options {
	if b == nil {
		panic(invoice.ErrNilBuilder)
	}
	return &Options{b: b}
}

// Builder returns the wrapped builder.
func (o *Options) Builder() *invoice.Builder {
	return o.b
}

// Use sends the invoice to Saman. A non-nil useGetMethod overrides how the
// payment page is opened for this invoice.
func (o *Options) Use(useGetMethod *bool) *Options {
	o.b.SetGateway(Name)
	if useGetMethod != nil {
		o.b.AddOrUpdateProperty(useGetMethodKey, *useGetMethod)
	}
	return o
}

func (o *Options) UseGetMethod() *Options {
	v := true
	return o.Use(&v)
}

func (o *Options) UsePostMethod() *Options {
	v := false
	return o.Use(&v)
}

// SetData sets the payer's cell number sent to the gateway.
func (o *Options) SetData(cellNumber string) *Options {
	return o.setString(cellNumberKey, cellNumber)
}

// SetSettlementInfo replaces the whole settlement list.
func (o *Options) SetSettlementInfo(items []SettlementInfo) *Options {
	if items == nil {
		o.b.AddError(fmt.Errorf("%w: settlement info is nil", gateway.ErrInvalidArgument))
		return o
	}

	list := make([]SettlementInfo, len(items))
	copy(list, items)
	o.b.AddOrUpdateProperty(settlementKey, list)
	return o
}

// AddSettlement appends one settlement item; repeated calls accumulate.
func (o *Options) AddSettlement(iban string, amount int64, purchaseID string) *Options {
	if strings.TrimSpace(iban) == "" {
		o.b.AddError(fmt.Errorf("%w: iban is empty", gateway.ErrInvalidArgument))
		return o
	}

	item := SettlementInfo{IBAN: iban, Amount: amount, PurchaseID: purchaseID}
	o.b.ChangeProperties(func(items map[string]any) {
		// a value of another type under the key is replaced, not merged
		list, _ := items[settlementKey].([]SettlementInfo)
		items[settlementKey] = append(list, item)
	})
	return o
}

func (o *Options) SetResNum1(v string) *Options { return o.setString(resNum1Key, v) }

func (o *Options) SetResNum2(v string) *Options { return o.setString(resNum2Key, v) }

func (o *Options) SetResNum3(v string) *Options { return o.setString(resNum3Key, v) }

// SetResNum4 is usually the merchant's main IBAN.
func (o *Options) SetResNum4(v string) *Options { return o.setString(resNum4Key, v) }

func (o *Options) setString(key, value string) *Options {
	if strings.TrimSpace(value) != "" {
		o.b.AddOrUpdateProperty(key, value)
	}
	return o
}
