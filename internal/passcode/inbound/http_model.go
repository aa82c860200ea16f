package inbound

import "time"

type SendOTPRequest struct {
	TransactionID string `json:"transaction_id"`
	Recipient     string `json:"recipient"`
}

type SendOTPResponse struct {
	TransactionID string    `json:"transaction_id"`
	Recipient     string    `json:"recipient"`
	Channel       string    `json:"channel"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (SendOTPResponse) Message() string {
	return "A one-time passcode has been sent."
}

type VerifyOTPRequest struct {
	TransactionID string `json:"transaction_id"`
	Recipient     string `json:"recipient"`
	Code          string `json:"code"`
}

type VerifyOTPResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

func (VerifyOTPResponse) Message() string {
	return "Passcode verification completed."
}
