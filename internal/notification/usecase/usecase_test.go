package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/mail"
	"github.com/loanforge/loanforge/internal/pkg/sms"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeMail struct {
	messages []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}

	f.messages = append(f.messages, msg)

	return nil
}

type fakeSMS struct {
	messages []sms.Message
	err      error
}

func (f *fakeSMS) Send(_ context.Context, msg sms.Message) error {
	if f.err != nil {
		return f.err
	}

	f.messages = append(f.messages, msg)

	return nil
}

const testConfig = `
app:
  company_name: Loanforge
mail:
  sender: no-reply@loanforge.example
sms:
  sender: "+15550000000"
`

type fixture struct {
	uc    *Usecase
	mail  *fakeMail
	sms   *fakeSMS
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator.NewV10Validator() error = %v", err)
	}

	f := &fixture{
		mail:  &fakeMail{},
		sms:   &fakeSMS{},
		clock: &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	f.uc = NewNotification(Dependency{
		RepoMail:   f.mail,
		RepoSMS:    f.sms,
		Config:     cfg,
		Clock:      f.clock,
		Validator:  val,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func (f *fixture) input(channel string) ConsumePasscodeIssuedInput {
	recipient := "user@example.com"
	if channel == "sms" {
		recipient = "+15551234567"
	}

	return ConsumePasscodeIssuedInput{
		TransactionID: "txn-1",
		Recipient:     recipient,
		Channel:       channel,
		Code:          "123456",
		ExpiresAtUnix: f.clock.now.Add(10 * time.Minute).Unix(),
	}
}

func TestUsecase_ConsumePasscodeIssuedEmail(t *testing.T) {
	f := newFixture(t)

	if err := f.uc.ConsumePasscodeIssued(context.Background(), f.input("email")); err != nil {
		t.Fatalf("ConsumePasscodeIssued() error = %v", err)
	}

	if len(f.mail.messages) != 1 {
		t.Fatalf("sent emails = %d, want 1", len(f.mail.messages))
	}

	msg := f.mail.messages[0]
	if msg.To[0] != "user@example.com" {
		t.Fatalf("email to = %q, want %q", msg.To[0], "user@example.com")
	}

	if !strings.Contains(msg.HTMLBody, "123456") {
		t.Fatalf("email body does not contain the passcode")
	}

	if !strings.Contains(msg.HTMLBody, "10 minutes") {
		t.Fatalf("email body does not mention time to expiry: %q", msg.HTMLBody)
	}

	if len(f.sms.messages) != 0 {
		t.Fatalf("sent sms = %d, want none for an email delivery", len(f.sms.messages))
	}
}

func TestUsecase_ConsumePasscodeIssuedSMS(t *testing.T) {
	f := newFixture(t)

	if err := f.uc.ConsumePasscodeIssued(context.Background(), f.input("sms")); err != nil {
		t.Fatalf("ConsumePasscodeIssued() error = %v", err)
	}

	if len(f.sms.messages) != 1 {
		t.Fatalf("sent sms = %d, want 1", len(f.sms.messages))
	}

	msg := f.sms.messages[0]
	if msg.To != "+15551234567" {
		t.Fatalf("sms to = %q, want %q", msg.To, "+15551234567")
	}

	if !strings.Contains(msg.Body, "123456") {
		t.Fatalf("sms body does not contain the passcode: %q", msg.Body)
	}
}

func TestUsecase_ConsumePasscodeIssuedRetriesDelivery(t *testing.T) {
	f := newFixture(t)
	f.mail.failures = 2

	if err := f.uc.ConsumePasscodeIssued(context.Background(), f.input("email")); err != nil {
		t.Fatalf("ConsumePasscodeIssued() error = %v, want transient failures retried", err)
	}

	if len(f.mail.messages) != 1 {
		t.Fatalf("sent emails = %d, want 1 after retries", len(f.mail.messages))
	}
}

func TestUsecase_ConsumePasscodeIssuedGivesUpAfterRetries(t *testing.T) {
	f := newFixture(t)
	f.sms.err = errors.New("provider down")

	err := f.uc.ConsumePasscodeIssued(context.Background(), f.input("sms"))
	if err == nil {
		t.Fatalf("ConsumePasscodeIssued() error = nil, want delivery failure surfaced for redelivery")
	}
}

func TestUsecase_ConsumePasscodeIssuedDropsInvalidPayload(t *testing.T) {
	f := newFixture(t)

	in := f.input("email")
	in.Code = "12"

	if err := f.uc.ConsumePasscodeIssued(context.Background(), in); err != nil {
		t.Fatalf("ConsumePasscodeIssued() error = %v, want invalid payloads dropped without error", err)
	}

	if len(f.mail.messages) != 0 {
		t.Fatalf("sent emails = %d, want none for invalid payload", len(f.mail.messages))
	}
}

func TestUsecase_ConsumePasscodeIssuedSkipsExpired(t *testing.T) {
	f := newFixture(t)

	in := f.input("email")
	in.ExpiresAtUnix = f.clock.now.Add(-time.Minute).Unix()

	if err := f.uc.ConsumePasscodeIssued(context.Background(), in); err != nil {
		t.Fatalf("ConsumePasscodeIssued() error = %v, want expired passcodes skipped", err)
	}

	if len(f.mail.messages) != 0 {
		t.Fatalf("sent emails = %d, want none for an expired passcode", len(f.mail.messages))
	}
}
