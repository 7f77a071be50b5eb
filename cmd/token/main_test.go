package main

import (
	"bytes"
	"strings"
	"testing"

	"paygate-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("Issues token", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run([]string{"-merchant", "shop-1", "-ttl", "1h"}, "secret", &out))

		merchant, err := auth.ParseMerchantToken([]byte("secret"), strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, "shop-1", merchant)
	})

	t.Run("Missing secret", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, run([]string{"-merchant", "shop-1"}, "", &out))
	})

	t.Run("Missing merchant", func(t *testing.T) {
		var out bytes.Buffer
		err := run(nil, "secret", &out)
		assert.ErrorIs(t, err, auth.ErrEmptyMerchant)
	})

	t.Run("Bad flag", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, run([]string{"-ttl", "forever"}, "secret", &out))
	})
}
