package entity

import (
	"strings"
	"time"
)

// Channel is the delivery channel inferred from the recipient address.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// identitySeparator joins the transaction ID and the normalized recipient
// into a single registry key. The unit separator cannot appear in either
// part, so distinct pairs can never collide.
const identitySeparator = "\x1f"

// Passcode is a short-lived numeric code bound to one transaction and
// recipient pair.
type Passcode struct {
	TransactionID string
	Recipient     string
	Code          string
	ExpiresAt     time.Time
}

// Key returns the registry key for this passcode.
func (p Passcode) Key() string {
	return IdentityKey(p.TransactionID, p.Recipient)
}

// IsExpired reports whether the passcode is no longer valid at the given time.
func (p Passcode) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// NormalizeRecipient trims surrounding whitespace and lowercases the
// recipient address so that equivalent addresses map to the same identity.
func NormalizeRecipient(recipient string) string {
	return strings.ToLower(strings.TrimSpace(recipient))
}

// IdentityKey derives the registry key for a (transaction, recipient) pair.
// The recipient is normalized before keying; the transaction ID is used
// verbatim.
func IdentityKey(transactionID, recipient string) string {
	return transactionID + identitySeparator + NormalizeRecipient(recipient)
}

// ChannelFor infers the delivery channel from the recipient address.
func ChannelFor(recipient string) Channel {
	if strings.Contains(recipient, "@") {
		return ChannelEmail
	}

	return ChannelSMS
}
