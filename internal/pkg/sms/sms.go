// Package sms defines the contracts for sending text messages.
//
// Like the mail package, it keeps the rest of the application independent
// from a specific SMS provider.
package sms

import (
	"context"
	"io"
)

// Message represents a text message payload.
type Message struct {
	// From is an optional explicit sender number; fallback depends on implementation.
	From string
	// To is the destination number in E.164 form.
	To string
	// Body is the message text.
	Body string
}

// SMS abstracts a text message provider.
type SMS interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
