package sms

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	// ErrTwilioCredentialsRequired is returned when AccountSID/AuthToken are missing.
	ErrTwilioCredentialsRequired = errors.New("twilio account sid and auth token are required")
	// ErrTwilioNoRecipient is returned when Message.To is empty.
	ErrTwilioNoRecipient = errors.New("no recipient provided")
	// ErrTwilioNoSender is returned when both Message.From and the configured default From are empty.
	ErrTwilioNoSender = errors.New("no sender provided")
)

// Twilio is an SMS implementation backed by the Twilio REST API.
type Twilio struct {
	client      *twilio.RestClient
	defaultFrom string
}

// TwilioConfig configures the Twilio implementation.
type TwilioConfig struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API auth token.
	AuthToken string
	// From is the default sender number when Message.From is empty.
	From string
}

// NewTwilio constructs a Twilio SMS sender.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, ErrTwilioCredentialsRequired
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Twilio{client: client, defaultFrom: cfg.From}, nil
}

// Send delivers a message through the Twilio messaging API.
func (t *Twilio) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if msg.To == "" {
		return ErrTwilioNoRecipient
	}

	from := msg.From
	if from == "" {
		from = t.defaultFrom
	}
	if from == "" {
		return ErrTwilioNoSender
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(from)
	params.SetBody(msg.Body)

	_, err := t.client.Api.CreateMessage(params)
	return err
}

// Close implements io.Closer for interface compatibility.
func (t *Twilio) Close() error {
	return nil
}
