package entity

// IntentRequest is what the application asks the payment gateway to create.
// IdempotencyKey, when set, is forwarded to the gateway so retries do not
// create a second charge there either.
type IntentRequest struct {
	ReferenceID    int64
	TransactionID  string
	AmountCents    int64
	Currency       string
	IdempotencyKey string
}

// Intent is a payment intent as created on the gateway. ClientSecret is
// handed to the caller so the client can confirm the payment directly.
type Intent struct {
	ReferenceID  int64
	GatewayID    string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}
