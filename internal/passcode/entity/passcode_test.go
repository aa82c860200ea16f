package entity

import (
	"testing"
	"time"
)

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name          string
		transactionID string
		recipient     string
		want          string
	}{
		{
			name:          "PlainPair",
			transactionID: "txn-1",
			recipient:     "user@example.com",
			want:          "txn-1\x1fuser@example.com",
		},
		{
			name:          "RecipientNormalized",
			transactionID: "txn-1",
			recipient:     "  User@Example.COM ",
			want:          "txn-1\x1fuser@example.com",
		},
		{
			name:          "TransactionIDVerbatim",
			transactionID: " txn-1 ",
			recipient:     "user@example.com",
			want:          " txn-1 \x1fuser@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentityKey(tt.transactionID, tt.recipient)

			if got != tt.want {
				t.Fatalf("IdentityKey() = %q, want %q", got, tt.want)
			}
		})
	}

	if IdentityKey(" txn-1", "user@example.com") == IdentityKey("txn-1", "user@example.com") {
		t.Fatalf("transaction IDs differing in whitespace must key distinct records")
	}
}

func TestPasscode_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	pc := Passcode{ExpiresAt: now.Add(10 * time.Minute)}

	if pc.IsExpired(now) {
		t.Fatalf("IsExpired() = true before the deadline")
	}

	if !pc.IsExpired(now.Add(10 * time.Minute)) {
		t.Fatalf("IsExpired() = false exactly at the deadline")
	}

	if !pc.IsExpired(now.Add(11 * time.Minute)) {
		t.Fatalf("IsExpired() = false after the deadline")
	}
}

func TestChannelFor(t *testing.T) {
	if got := ChannelFor("user@example.com"); got != ChannelEmail {
		t.Fatalf("ChannelFor(email) = %q, want %q", got, ChannelEmail)
	}

	if got := ChannelFor("+15551234567"); got != ChannelSMS {
		t.Fatalf("ChannelFor(phone) = %q, want %q", got, ChannelSMS)
	}
}
