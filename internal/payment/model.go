package payment

// Request is the body of POST /payments. Either Gateway or Account must be
// set; with both, the named gateway is used and Account picks its terminal.
type Request struct {
	Gateway        string        `json:"gateway,omitempty"`
	Account        string        `json:"account,omitempty"`
	TrackingNumber int64         `json:"tracking_number,omitempty"`
	Amount         int64         `json:"amount"`
	CallbackURL    string        `json:"callback_url"`
	Saman          *SamanOptions `json:"saman,omitempty"`
}

type SamanOptions struct {
	UseGetMethod *bool        `json:"use_get_method,omitempty"`
	CellNumber   string       `json:"cell_number,omitempty"`
	ResNum1      string       `json:"res_num1,omitempty"`
	ResNum2      string       `json:"res_num2,omitempty"`
	ResNum3      string       `json:"res_num3,omitempty"`
	ResNum4      string       `json:"res_num4,omitempty"`
	Settlements  []Settlement `json:"settlements,omitempty"`
}

type Settlement struct {
	IBAN       string `json:"iban"`
	Amount     int64  `json:"amount"`
	PurchaseID string `json:"purchase_id,omitempty"`
}
