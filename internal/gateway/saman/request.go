package saman

import (
	"strconv"

	"paygate-be/internal/invoice"
)

func buildTokenRequest(inv *invoice.Invoice, acc Account) tokenRequest {
	req := tokenRequest{
		Action:      tokenAction,
		TerminalID:  acc.TerminalID,
		Amount:      inv.Amount,
		ResNum:      strconv.FormatInt(inv.TrackingNumber, 10),
		RedirectURL: inv.CallbackURL,
	}

	req.CellNumber, _ = cellNumber(inv)
	req.ResNum1, _ = resNum1(inv)
	req.ResNum2, _ = resNum2(inv)
	req.ResNum3, _ = resNum3(inv)
	req.ResNum4, _ = resNum4(inv)

	settlements, _ := settlementInfo(inv)
	req.SettlementIbanInfo = toSettlementIbanInfo(settlements)

	return req
}

// toSettlementIbanInfo drops zero-amount items. It returns nil when nothing is
// left so the field is left out of the request.
func toSettlementIbanInfo(items []SettlementInfo) []settlementIbanInfo {
	var out []settlementIbanInfo
	for _, item := range items {
		if item.Amount == 0 {
			continue
		}
		out = append(out, settlementIbanInfo{
			IBAN:       item.IBAN,
			Amount:     item.Amount,
			PurchaseID: item.PurchaseID,
		})
	}
	return out
}
