package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
)

type IssueInput struct {
	TransactionID string `validate:"required,max=64"`
	Recipient     string `validate:"required,min=3,max=254"`
}

type IssueOutput struct {
	TransactionID string
	Recipient     string
	Channel       entity.Channel
	ExpiresAt     time.Time
}

// Issue creates a fresh passcode for the pair, replacing any code issued
// earlier, and hands it to the delivery pipeline. The code itself never
// leaves through the synchronous response.
func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	in.Recipient = entity.NormalizeRecipient(in.Recipient)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "transaction_id", in.TransactionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	pc := entity.Passcode{
		TransactionID: in.TransactionID,
		Recipient:     in.Recipient,
		Code:          code,
		ExpiresAt:     s.clock.Now().Add(s.cfg.GetSecond("modules.passcode.ttl_seconds")),
	}

	if err := s.repoStore.Save(ctx, pc); err != nil {
		slog.ErrorContext(ctx, "failed to repo save passcode", "transaction_id", in.TransactionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	channel := entity.ChannelFor(in.Recipient)

	if err := s.repoMessaging.PublishPasscodeIssued(ctx, PasscodeIssuedEvent{
		TransactionID: pc.TransactionID,
		Recipient:     pc.Recipient,
		Channel:       string(channel),
		Code:          pc.Code,
		ExpiresAt:     pc.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish passcode issued", "transaction_id", in.TransactionID, "error", err)
	}

	return &IssueOutput{
		TransactionID: pc.TransactionID,
		Recipient:     pc.Recipient,
		Channel:       channel,
		ExpiresAt:     pc.ExpiresAt,
	}, nil
}
