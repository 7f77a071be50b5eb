// Package saman integrates the Saman (SEP) payment gateway, including split
// settlement (Tashim) and the reference number fields the bank accepts.
package saman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"paygate-be/internal/account"
	"paygate-be/internal/gateway"
	"paygate-be/internal/invoice"
	"paygate-be/internal/logger"

	"go.uber.org/zap"
)

const (
	Name = "Saman"

	DefaultTokenURL       = "https://sep.shaparak.ir/onlinepg/onlinepg"
	DefaultPaymentPageURL = "https://sep.shaparak.ir/OnlinePG/SendToken"

	tokenAction        = "token"
	defaultHTTPTimeout = 15 * time.Second
)

type Config struct {
	TokenURL       string
	PaymentPageURL string
	// UseGetMethod is the default for invoices that do not choose a method.
	UseGetMethod bool
	HTTPTimeout  time.Duration
}

type Gateway struct {
	cfg        Config
	httpClient *http.Client
	accounts   *account.Provider[Account]
}

var (
	_ gateway.Gateway      = (*Gateway)(nil)
	_ gateway.AccountOwner = (*Gateway)(nil)
)

func New(cfg Config, accounts *account.Provider[Account]) *Gateway {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.PaymentPageURL == "" {
		cfg.PaymentPageURL = DefaultPaymentPageURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if accounts == nil {
		logger.L().Warn("Saman gateway built without accounts")
		accounts = NewAccountProvider()
	}

	return &Gateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		accounts:   accounts,
	}
}

func (g *Gateway) Name() string { return Name }

func (g *Gateway) Accounts() gateway.AccountProvider { return g.accounts }

// RequestPayment asks Saman for a payment token and returns where the payer
// should be sent with it.
func (g *Gateway) RequestPayment(ctx context.Context, inv *invoice.Invoice) (*gateway.PaymentRequest, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice is nil", gateway.ErrInvalidArgument)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("gateway", Name),
		zap.Int64("tracking_number", inv.TrackingNumber),
		zap.Int64("amount", inv.Amount),
	)

	acc, err := g.account(ctx, inv.GatewayAccountName)
	if err != nil {
		log.Error("Failed to pick Saman account", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("account", acc.Name))

	body, err := json.Marshal(buildTokenRequest(inv, acc))
	if err != nil {
		log.Error("Failed to marshal token request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.TokenURL, bytes.NewBuffer(body))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	log.Info("Sending token request to Saman")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Saman request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read saman response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Saman returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return nil, fmt.Errorf("saman error: %s", string(respBody))
	}

	var res tokenResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		log.Error("Failed decoding Saman response", zap.Error(err))
		return nil, err
	}

	if res.Status != 1 || res.Token == "" {
		tokenErr := &TokenError{Status: res.Status, Code: res.ErrorCode, Desc: res.ErrorDesc}
		log.Warn("Saman rejected the token request", zap.Error(tokenErr))
		return nil, tokenErr
	}

	log.Info("Saman token issued")

	return g.paymentRequest(inv, acc, res.Token), nil
}

func (g *Gateway) account(ctx context.Context, name string) (Account, error) {
	accounts, err := g.accounts.Load(ctx)
	if err != nil {
		return Account{}, err
	}

	if name == "" {
		acc, ok := accounts.Default()
		if !ok {
			return Account{}, ErrNoAccount
		}
		return acc, nil
	}

	acc, ok := accounts.Get(name)
	if !ok {
		return Account{}, fmt.Errorf("%w: %q", account.ErrAccountNotFound, name)
	}
	return acc, nil
}

func (g *Gateway) paymentRequest(inv *invoice.Invoice, acc Account, token string) *gateway.PaymentRequest {
	useGet, ok := useGetMethod(inv)
	if !ok {
		useGet = g.cfg.UseGetMethod
	}

	pr := &gateway.PaymentRequest{
		GatewayName:    Name,
		AccountName:    acc.Name,
		TrackingNumber: inv.TrackingNumber,
		Token:          token,
	}

	if useGet {
		pr.Method = http.MethodGet
		pr.URL = g.cfg.PaymentPageURL + "?token=" + url.QueryEscape(token)
		return pr
	}

	pr.Method = http.MethodPost
	pr.URL = g.cfg.PaymentPageURL
	pr.Form = map[string]string{"Token": token}
	return pr
}
