// Package virtual is a sandbox gateway for development. It never contacts a
// bank; the payer is sent to a local page that simulates one.
package virtual

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"paygate-be/internal/gateway"
	"paygate-be/internal/invoice"
	"paygate-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	Name = "Virtual"

	DefaultPaymentURL = "http://localhost:8080/virtual/pay"

	pendingTTL = 30 * time.Minute
)

// pendingPayment is what the page needs to finish a payment. The callback
// comes from the invoice, never from the page request.
type pendingPayment struct {
	callback       *url.URL
	trackingNumber int64
	expires        time.Time
}

type Gateway struct {
	paymentURL string
	pagePath   string

	mu      sync.Mutex
	pending map[string]pendingPayment
	now     func() time.Time
}

var _ gateway.Gateway = (*Gateway)(nil)

func New(paymentURL string) (*Gateway, error) {
	if paymentURL == "" {
		paymentURL = DefaultPaymentURL
	}
	u, err := url.Parse(paymentURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: virtual payment url %q", gateway.ErrInvalidArgument, paymentURL)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return &Gateway{
		paymentURL: u.String(),
		pagePath:   path,
		pending:    make(map[string]pendingPayment),
		now:        time.Now,
	}, nil
}

func (g *Gateway) Name() string { return Name }

func (g *Gateway) RequestPayment(ctx context.Context, inv *invoice.Invoice) (*gateway.PaymentRequest, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice is nil", gateway.ErrInvalidArgument)
	}

	callback, err := url.Parse(inv.CallbackURL)
	if err != nil || !callback.IsAbs() || (callback.Scheme != "http" && callback.Scheme != "https") {
		return nil, fmt.Errorf("%w: callback url %q", gateway.ErrInvalidArgument, inv.CallbackURL)
	}

	token := uuid.NewString()
	g.remember(token, pendingPayment{callback: callback, trackingNumber: inv.TrackingNumber})

	q := url.Values{}
	q.Set("token", token)
	q.Set("trackingNumber", strconv.FormatInt(inv.TrackingNumber, 10))
	q.Set("amount", strconv.FormatInt(inv.Amount, 10))

	logger.FromCtx(ctx).Debug("virtual payment requested",
		zap.Int64("tracking_number", inv.TrackingNumber),
		zap.String("token", token),
	)

	return &gateway.PaymentRequest{
		GatewayName:    Name,
		TrackingNumber: inv.TrackingNumber,
		Token:          token,
		Method:         http.MethodGet,
		URL:            g.paymentURL + "?" + q.Encode(),
	}, nil
}

// PagePath is where the host mounts the gateway as its payment page.
func (g *Gateway) PagePath() string { return g.pagePath }

func (g *Gateway) remember(token string, p pendingPayment) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, v := range g.pending {
		if now.After(v.expires) {
			delete(g.pending, k)
		}
	}
	p.expires = now.Add(pendingTTL)
	g.pending[token] = p
}

// take returns the payment for token and forgets it; a token is good once.
func (g *Gateway) take(token string) (pendingPayment, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.pending[token]
	if !ok {
		return pendingPayment{}, false
	}
	delete(g.pending, token)
	if g.now().After(p.expires) {
		return pendingPayment{}, false
	}
	return p, true
}

// ServeHTTP plays the bank: it sends the payer straight back to the
// invoice's callback as a successful payment. Only tokens issued by
// RequestPayment are honored, so the page cannot redirect anywhere else.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	p, ok := g.take(token)
	if !ok {
		http.Error(w, "unknown token", http.StatusNotFound)
		return
	}

	callback := *p.callback
	result := callback.Query()
	result.Set("token", token)
	result.Set("trackingNumber", strconv.FormatInt(p.trackingNumber, 10))
	result.Set("status", "succeed")
	callback.RawQuery = result.Encode()

	logger.FromCtx(r.Context()).Info("virtual payment completed",
		zap.String("token", token),
		zap.Int64("tracking_number", p.trackingNumber),
	)
	http.Redirect(w, r, callback.String(), http.StatusFound)
}
