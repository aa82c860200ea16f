package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loanforge/loanforge/internal/pkg/mail"
	"github.com/loanforge/loanforge/internal/pkg/sms"
	"github.com/sethvargo/go-retry"
)

const passcodeEmailTemplate = `<html>
<body style="font-family: sans-serif;">
  <h2>Your verification code</h2>
  <p>Use this code to confirm your transaction. It expires in {{.expires_minutes}} minutes.</p>
  <p style="font-size: 28px; letter-spacing: 6px;"><strong>{{.code}}</strong></p>
  <p>If you did not request this code, you can ignore this message.</p>
  <p>{{.company_name}} &copy; {{.year}}</p>
</body>
</html>`

type ConsumePasscodeIssuedInput struct {
	TransactionID string `validate:"required,max=64"`
	Recipient     string `validate:"required,min=3,max=254"`
	Channel       string `validate:"required,oneof=email sms"`
	Code          string `validate:"required,len=6,numeric"`
	ExpiresAtUnix int64  `validate:"required,gt=0"`
}

// ConsumePasscodeIssued delivers a freshly issued passcode over the channel
// chosen at issue time. Delivery is retried a few times before giving up and
// letting the broker redeliver.
func (s *Usecase) ConsumePasscodeIssued(ctx context.Context, in ConsumePasscodeIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasscodeIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	expiresIn := time.Unix(in.ExpiresAtUnix, 0).Sub(s.clock.Now())
	if expiresIn <= 0 {
		slog.WarnContext(ctx, "skipping delivery of already expired passcode", "transaction_id", in.TransactionID)
		return nil
	}

	deliver := s.deliverEmail
	if in.Channel == "sms" {
		deliver = s.deliverSMS
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := deliver(ctx, in, expiresIn); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to deliver passcode", "transaction_id", in.TransactionID, "channel", in.Channel, "error", err)
		return err
	}

	return nil
}

func (s *Usecase) deliverEmail(ctx context.Context, in ConsumePasscodeIssuedInput, expiresIn time.Duration) error {
	body, err := s.renderTemplate("passcode_email", passcodeEmailTemplate, map[string]any{
		"code":            in.Code,
		"expires_minutes": int(expiresIn.Round(time.Minute).Minutes()),
		"company_name":    s.cfg.GetString("app.company_name"),
		"year":            s.clock.Now().Format("2006"),
	})
	if err != nil {
		return err
	}

	return s.repoMail.Send(ctx, mail.Message{
		From:     s.cfg.GetString("mail.sender"),
		To:       []string{in.Recipient},
		Subject:  "Your verification code",
		HTMLBody: body,
	})
}

func (s *Usecase) deliverSMS(ctx context.Context, in ConsumePasscodeIssuedInput, expiresIn time.Duration) error {
	body := fmt.Sprintf("%s is your %s verification code. It expires in %d minutes.",
		in.Code,
		s.cfg.GetString("app.company_name"),
		int(expiresIn.Round(time.Minute).Minutes()))

	return s.repoSMS.Send(ctx, sms.Message{
		From: s.cfg.GetString("sms.sender"),
		To:   in.Recipient,
		Body: body,
	})
}
