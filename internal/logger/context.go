package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	merchantKey  ctxKey = "merchant"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithMerchant records the authenticated caller so every log line of the
// request carries it.
func WithMerchant(ctx context.Context, merchant string) context.Context {
	return context.WithValue(ctx, merchantKey, merchant)
}

func MerchantFrom(ctx context.Context) string {
	v, _ := ctx.Value(merchantKey).(string)
	return v
}

// FromCtx returns logger with request_id and merchant added when present
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if ctx == nil {
		return l
	}

	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if merchant := MerchantFrom(ctx); merchant != "" {
		l = l.With(zap.String("merchant", merchant))
	}
	return l
}
