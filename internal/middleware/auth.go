package middleware

import (
	"net/http"

	"paygate-be/internal/auth"
	"paygate-be/internal/logger"

	"go.uber.org/zap"
)

// Auth reads an optional merchant bearer token. Requests without one pass
// through anonymous; a token that does not verify is rejected. The token
// subject is stored as the merchant.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			merchant, err := auth.ParseMerchantToken(secret, token)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected bearer token", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := logger.WithMerchant(r.Context(), merchant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMerchant rejects anonymous requests. It must run after Auth.
func RequireMerchant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logger.MerchantFrom(r.Context()) == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
