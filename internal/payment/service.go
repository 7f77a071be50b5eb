package payment

import (
	"context"
	"fmt"

	"paygate-be/internal/gateway"
	"paygate-be/internal/gateway/saman"
	"paygate-be/internal/invoice"
	"paygate-be/internal/logger"

	"go.uber.org/zap"
)

// GatewayProvider is the part of gateway.Provider the service needs.
type GatewayProvider interface {
	Provide(ctx context.Context, name string) (gateway.Gateway, error)
	ProvideByAccountName(ctx context.Context, accountName string) (gateway.Gateway, error)
}

type Service interface {
	RequestPayment(ctx context.Context, req Request) (*gateway.PaymentRequest, error)
}

type service struct {
	gateways GatewayProvider
}

func NewService(gateways GatewayProvider) Service {
	return &service{gateways: gateways}
}

// RequestPayment builds the invoice, resolves its gateway and asks it for a
// payment page.
func (s *service) RequestPayment(ctx context.Context, req Request) (*gateway.PaymentRequest, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", req.Gateway),
		zap.String("account", req.Account),
		zap.Int64("amount", req.Amount),
	)

	inv, err := buildInvoice(req)
	if err != nil {
		log.Warn("invalid payment request", zap.Error(err))
		return nil, err
	}

	// a request with only saman options selects saman through the invoice
	name := req.Gateway
	if name == "" && req.Account == "" {
		name = inv.GatewayName
	}

	gw, err := s.resolve(ctx, name, req.Account)
	if err != nil {
		return nil, err
	}
	inv.GatewayName = gw.Name()

	pr, err := gw.RequestPayment(ctx, inv)
	if err != nil {
		log.Error("gateway failed to request payment",
			zap.String("resolved", gw.Name()),
			zap.Int64("tracking_number", inv.TrackingNumber),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("payment requested",
		zap.String("resolved", gw.Name()),
		zap.Int64("tracking_number", inv.TrackingNumber),
	)
	return pr, nil
}

func (s *service) resolve(ctx context.Context, name, accountName string) (gateway.Gateway, error) {
	if name != "" {
		return s.gateways.Provide(ctx, name)
	}
	return s.gateways.ProvideByAccountName(ctx, accountName)
}

func buildInvoice(req Request) (*invoice.Invoice, error) {
	b := invoice.NewBuilder().
		SetAmount(req.Amount).
		SetCallbackURL(req.CallbackURL).
		SetGateway(req.Gateway).
		UseAccount(req.Account)

	if req.TrackingNumber != 0 {
		b.SetTrackingNumber(req.TrackingNumber)
	} else {
		b.UseRandomTrackingNumber()
	}

	if req.Saman != nil {
		if req.Gateway != "" && !gateway.CompareName(req.Gateway, saman.Name) {
			return nil, fmt.Errorf("%w: saman options given for gateway %q", ErrInvalidRequest, req.Gateway)
		}
		applySaman(b, req.Account, req.Saman)
	}

	return b.Build()
}

func applySaman(b *invoice.Builder, accountName string, opts *SamanOptions) {
	o := saman.For(b)
	if accountName == "" || opts.UseGetMethod != nil {
		o.Use(opts.UseGetMethod)
	}

	o.SetData(opts.CellNumber).
		SetResNum1(opts.ResNum1).
		SetResNum2(opts.ResNum2).
		SetResNum3(opts.ResNum3).
		SetResNum4(opts.ResNum4)

	for _, st := range opts.Settlements {
		o.AddSettlement(st.IBAN, st.Amount, st.PurchaseID)
	}
}
