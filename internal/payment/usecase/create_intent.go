package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/loanforge/loanforge/internal/payment/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/idempotency"
)

type CreateIntentInput struct {
	TransactionID  string `validate:"required,max=64"`
	AmountCents    int64  `validate:"required,gt=0"`
	Currency       string `validate:"omitempty,len=3,alpha"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

type CreateIntentOutput struct {
	ReferenceID  int64
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}

// CreateIntent registers a payment intent with the gateway. When the caller
// supplies an idempotency key, retries with the same key are rejected instead
// of charging twice.
func (s *Usecase) CreateIntent(ctx context.Context, in CreateIntentInput) (*CreateIntentOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateIntent")
	defer span.End()

	in.TransactionID = strings.TrimSpace(in.TransactionID)
	in.Currency = strings.ToLower(strings.TrimSpace(in.Currency))
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	if in.Currency == "" {
		in.Currency = "usd"
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var out *CreateIntentOutput
	create := func(ctx context.Context) error {
		intent, err := s.repoGateway.CreateIntent(ctx, entity.IntentRequest{
			ReferenceID:    s.uid.Generate(),
			TransactionID:  in.TransactionID,
			AmountCents:    in.AmountCents,
			Currency:       in.Currency,
			IdempotencyKey: in.IdempotencyKey,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create payment intent", "transaction_id", in.TransactionID, "error", err)
			return err
		}

		out = &CreateIntentOutput{
			ReferenceID:  intent.ReferenceID,
			ClientSecret: intent.ClientSecret,
			AmountCents:  intent.AmountCents,
			Currency:     intent.Currency,
			Status:       intent.Status,
		}

		return nil
	}

	if in.IdempotencyKey == "" {
		if err := create(ctx); err != nil {
			return nil, err
		}

		return out, nil
	}

	err := s.idemp.Exec(ctx, "payment:intent:"+in.IdempotencyKey, create,
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.payment.idempotency_ttl_seconds")))
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return nil, goerror.NewBusiness("A payment intent was already created with this idempotency key", goerror.CodeConflict)
	}
	if errors.Is(err, idempotency.ErrAlreadyFailed) {
		return nil, goerror.NewBusiness("A previous attempt with this idempotency key failed, use a new key", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}
