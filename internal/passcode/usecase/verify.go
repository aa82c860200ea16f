package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
)

type VerifyInput struct {
	TransactionID string `validate:"required,max=64"`
	Recipient     string `validate:"required,min=3,max=254"`
	// Code is an untrusted candidate. It is compared verbatim against the
	// stored code, so any malformed value simply fails the comparison.
	Code string
}

type VerifyOutput struct {
	Valid bool
}

// Verify checks the submitted code against the one on record. A wrong code,
// an expired code, and a pair that never received one all come back as
// invalid rather than an error. Verification does not consume the code.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.Recipient = entity.NormalizeRecipient(in.Recipient)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	pc, err := s.repoStore.Find(ctx, in.TransactionID, in.Recipient)
	if errors.Is(err, goerror.ErrNotFound) {
		return &VerifyOutput{Valid: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo find passcode", "transaction_id", in.TransactionID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if pc.IsExpired(s.clock.Now()) {
		return &VerifyOutput{Valid: false}, nil
	}

	valid := subtle.ConstantTimeCompare([]byte(pc.Code), []byte(in.Code)) == 1

	return &VerifyOutput{Valid: valid}, nil
}
