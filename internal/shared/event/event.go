// Package event holds the message contracts shared between publishing and
// consuming modules.
package event

const (
	// PasscodeIssuedDestination is the topic/subject where issued passcodes
	// are published for delivery.
	PasscodeIssuedDestination = "loanforge.passcode.issued"
	// PasscodeIssuedConsumerNotification names the notification module's
	// consumer (NSQ channel / NATS queue group / Kafka group / Pub/Sub
	// subscription) on the passcode issued destination.
	PasscodeIssuedConsumerNotification = "notification-passcode-issued"
)

// PasscodeIssuedMessage is the wire payload published when a passcode is issued.
type PasscodeIssuedMessage struct {
	TransactionID string `json:"transaction_id"`
	Recipient     string `json:"recipient"`
	Channel       string `json:"channel"`
	Code          string `json:"code"`
	ExpiresAtUnix int64  `json:"expires_at_unix"`
}
