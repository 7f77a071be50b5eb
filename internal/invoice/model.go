package invoice

// Invoice is a payment request ready to be handed to a gateway.
type Invoice struct {
	TrackingNumber     int64
	Amount             int64
	CallbackURL        string
	GatewayName        string
	GatewayAccountName string
	Properties         *Properties
}
