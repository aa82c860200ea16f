package inbound

import "net/http"

type CreateIntentRequest struct {
	TransactionID string `json:"transaction_id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
}

type CreateIntentResponse struct {
	ReferenceID  int64  `json:"reference_id,string"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

func (CreateIntentResponse) Message() string {
	return "Payment intent has been created."
}

func (CreateIntentResponse) StatusCode() int {
	return http.StatusCreated
}
