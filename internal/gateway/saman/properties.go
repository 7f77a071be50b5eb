package saman

import "paygate-be/internal/invoice"

// Property keys are private to this package; the prefix keeps them apart
// from other gateway modules' keys.
const (
	useGetMethodKey = "Saman.UseGetMethodForPaymentPage"
	cellNumberKey   = "Saman.CellNumber"
	settlementKey   = "Saman.SettlementInfo"
	resNum1Key      = "Saman.ResNum1"
	resNum2Key      = "Saman.ResNum2"
	resNum3Key      = "Saman.ResNum3"
	resNum4Key      = "Saman.ResNum4"
)

func properties(inv *invoice.Invoice) *invoice.Properties {
	if inv == nil {
		return nil
	}
	return inv.Properties
}

func cellNumber(inv *invoice.Invoice) (string, bool) {
	return invoice.Lookup[string](properties(inv), cellNumberKey)
}

func useGetMethod(inv *invoice.Invoice) (bool, bool) {
	return invoice.Lookup[bool](properties(inv), useGetMethodKey)
}

func settlementInfo(inv *invoice.Invoice) ([]SettlementInfo, bool) {
	return invoice.Lookup[[]SettlementInfo](properties(inv), settlementKey)
}

func resNum1(inv *invoice.Invoice) (string, bool) {
	return invoice.Lookup[string](properties(inv), resNum1Key)
}

func resNum2(inv *invoice.Invoice) (string, bool) {
	return invoice.Lookup[string](properties(inv), resNum2Key)
}

func resNum3(inv *invoice.Invoice) (string, bool) {
	return invoice.Lookup[string](properties(inv), resNum3Key)
}

func resNum4(inv *invoice.Invoice) (string, bool) {
	return invoice.Lookup[string](properties(inv), resNum4Key)
}
