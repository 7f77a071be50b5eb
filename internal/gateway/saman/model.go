package saman

// SettlementInfo is one beneficiary share (Tashim) of a payment. Items with
// a zero Amount are dropped when the request is sent.
type SettlementInfo struct {
	IBAN       string `json:"iban"`
	Amount     int64  `json:"amount"`
	PurchaseID string `json:"purchase_id,omitempty"`
}

// settlementIbanInfo is the wire shape of SettlementInfo.
type settlementIbanInfo struct {
	IBAN       string `json:"IBAN"`
	Amount     int64  `json:"Amount"`
	PurchaseID string `json:"PurchaseId,omitempty"`
}

// tokenRequest is the body of the token call with Tashim support.
// Empty optional fields are omitted from the body on purpose.
type tokenRequest struct {
	Action             string               `json:"action"`
	TerminalID         string               `json:"TerminalId"`
	Amount             int64                `json:"Amount"`
	ResNum             string               `json:"ResNum"`
	RedirectURL        string               `json:"RedirectUrl"`
	CellNumber         string               `json:"CellNumber,omitempty"`
	ResNum1            string               `json:"ResNum1,omitempty"`
	ResNum2            string               `json:"ResNum2,omitempty"`
	ResNum3            string               `json:"ResNum3,omitempty"`
	ResNum4            string               `json:"ResNum4,omitempty"`
	SettlementIbanInfo []settlementIbanInfo `json:"SettlementIbanInfo,omitempty"`
}

type tokenResponse struct {
	Status    int    `json:"status"`
	Token     string `json:"token"`
	ErrorCode string `json:"errorCode"`
	ErrorDesc string `json:"errorDesc"`
}
