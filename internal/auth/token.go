package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret   = errors.New("jwt secret is empty")
	ErrInvalidToken  = errors.New("invalid merchant token")
	ErrEmptyMerchant = errors.New("merchant is empty")
)

// ExtractAccessToken returns the bearer token of r, or "" when there is none.
func ExtractAccessToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// IssueMerchantToken signs an HS256 token whose subject is merchant.
func IssueMerchantToken(secret []byte, merchant string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	if strings.TrimSpace(merchant) == "" {
		return "", ErrEmptyMerchant
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  merchant,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseMerchantToken verifies token and returns its merchant.
func ParseMerchantToken(secret []byte, token string) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	merchant, err := parsed.Claims.GetSubject()
	if err != nil || merchant == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return merchant, nil
}
