package saman

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTokenRequest(t *testing.T) {
	acc := Account{Name: "main", TerminalID: "T-1", Password: "secret"}

	t.Run("DropsZeroAmountSettlements", func(t *testing.T) {
		inv, err := For(newBuilder()).Use(nil).
			SetResNum1("A1").
			AddSettlement("IR01", 500, "p1").
			AddSettlement("IR02", 0, "").
			Builder().Build()
		require.NoError(t, err)

		req := buildTokenRequest(inv, acc)
		assert.Equal(t, "token", req.Action)
		assert.Equal(t, "T-1", req.TerminalID)
		assert.Equal(t, int64(1000), req.Amount)
		assert.Equal(t, "1001", req.ResNum)
		assert.Equal(t, "https://shop.example.com/verify", req.RedirectURL)
		assert.Equal(t, "A1", req.ResNum1)
		assert.Equal(t, []settlementIbanInfo{{IBAN: "IR01", Amount: 500, PurchaseID: "p1"}}, req.SettlementIbanInfo)
	})

	t.Run("OmitsEmptySettlementList", func(t *testing.T) {
		inv, err := For(newBuilder()).Use(nil).
			AddSettlement("IR02", 0, "").
			Builder().Build()
		require.NoError(t, err)

		body, err := json.Marshal(buildTokenRequest(inv, acc))
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.NotContains(t, fields, "SettlementIbanInfo")
		assert.NotContains(t, fields, "CellNumber")
		assert.NotContains(t, fields, "ResNum1")
		assert.Equal(t, "T-1", fields["TerminalId"])
		assert.Equal(t, "https://shop.example.com/verify", fields["RedirectUrl"])
	})

	t.Run("WireNames", func(t *testing.T) {
		inv, err := For(newBuilder()).Use(nil).
			SetData("0912").
			AddSettlement("IR01", 250, "x").
			Builder().Build()
		require.NoError(t, err)

		body, err := json.Marshal(buildTokenRequest(inv, acc))
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"action": "token",
			"TerminalId": "T-1",
			"Amount": 1000,
			"ResNum": "1001",
			"RedirectUrl": "https://shop.example.com/verify",
			"CellNumber": "0912",
			"SettlementIbanInfo": [{"IBAN": "IR01", "Amount": 250, "PurchaseId": "x"}]
		}`, string(body))
	})
}
