package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/payment/entity"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/idempotency"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type fakeGateway struct {
	calls    int
	err      error
	lastReq  entity.IntentRequest
	response *entity.Intent
}

func (f *fakeGateway) CreateIntent(_ context.Context, req entity.IntentRequest) (*entity.Intent, error) {
	f.calls++
	f.lastReq = req

	if f.err != nil {
		return nil, f.err
	}

	if f.response != nil {
		return f.response, nil
	}

	return &entity.Intent{
		ReferenceID:  req.ReferenceID,
		GatewayID:    "pi_test",
		ClientSecret: "pi_test_secret",
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		Status:       "requires_payment_method",
	}, nil
}

// fakeIdempotency mimics the redis-backed tracker with an in-memory state map.
type fakeIdempotency struct {
	states map[string]idempotency.State
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{states: make(map[string]idempotency.State)}
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	state, ok := f.states[key]
	if !ok {
		f.states[key] = idempotency.StateInProgress
		return idempotency.StateNone, nil
	}

	return state, nil
}

func (f *fakeIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdempotency) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, time.Minute)
	if err != nil {
		return err
	}

	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := f.MarkFailed(ctx, key, time.Minute); markErr != nil {
			return markErr
		}
		return err
	}

	return f.MarkCompleted(ctx, key, time.Minute)
}

type fakeNumberID struct {
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

func newUsecase(t *testing.T, gw *fakeGateway, idemp idempotency.Idempotency) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  payment:\n    idempotency_ttl_seconds: 86400\n"))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator.NewV10Validator() error = %v", err)
	}

	return New(Dependency{
		RepoGateway: gw,
		Idempotency: idemp,
		Validator:   val,
		Config:      cfg,
		UID:         &fakeNumberID{},
		Instrument:  instrument.NewNoop(),
	})
}

func TestUsecase_CreateIntent(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUsecase(t, gw, newFakeIdempotency())

	out, err := uc.CreateIntent(context.Background(), CreateIntentInput{
		TransactionID: "txn-1",
		AmountCents:   250000,
	})
	if err != nil {
		t.Fatalf("CreateIntent() error = %v", err)
	}

	if out.ClientSecret != "pi_test_secret" {
		t.Fatalf("client secret = %q, want %q", out.ClientSecret, "pi_test_secret")
	}

	if out.Currency != "usd" {
		t.Fatalf("currency = %q, want defaulted %q", out.Currency, "usd")
	}

	if gw.lastReq.ReferenceID == 0 {
		t.Fatalf("gateway request has no reference ID")
	}
}

func TestUsecase_CreateIntentInvalidInput(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUsecase(t, gw, newFakeIdempotency())

	tests := []struct {
		name string
		in   CreateIntentInput
	}{
		{name: "MissingTransaction", in: CreateIntentInput{AmountCents: 1000}},
		{name: "ZeroAmount", in: CreateIntentInput{TransactionID: "txn-1"}},
		{name: "NegativeAmount", in: CreateIntentInput{TransactionID: "txn-1", AmountCents: -5}},
		{name: "BadCurrency", in: CreateIntentInput{TransactionID: "txn-1", AmountCents: 1000, Currency: "dollars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateIntent(context.Background(), tt.in)

			var gerr *goerror.Error
			if !errors.As(err, &gerr) {
				t.Fatalf("CreateIntent() error = %v, want a structured validation error", err)
			}

			if gw.calls != 0 {
				t.Fatalf("gateway calls = %d, want none after rejected input", gw.calls)
			}
		})
	}
}

func TestUsecase_CreateIntentIdempotent(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUsecase(t, gw, newFakeIdempotency())

	in := CreateIntentInput{
		TransactionID:  "txn-1",
		AmountCents:    250000,
		IdempotencyKey: "key-1",
	}

	if _, err := uc.CreateIntent(context.Background(), in); err != nil {
		t.Fatalf("CreateIntent(first) error = %v", err)
	}

	_, err := uc.CreateIntent(context.Background(), in)

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("CreateIntent(retry) error = %v, want conflict", err)
	}

	if gerr.Code() != goerror.CodeConflict {
		t.Fatalf("CreateIntent(retry) code = %v, want %v", gerr.Code(), goerror.CodeConflict)
	}

	if gw.calls != 1 {
		t.Fatalf("gateway calls = %d, want the retry suppressed", gw.calls)
	}
}

func TestUsecase_CreateIntentForwardsIdempotencyKey(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUsecase(t, gw, newFakeIdempotency())

	if _, err := uc.CreateIntent(context.Background(), CreateIntentInput{
		TransactionID:  "txn-1",
		AmountCents:    250000,
		IdempotencyKey: "  key-1  ",
	}); err != nil {
		t.Fatalf("CreateIntent() error = %v", err)
	}

	if gw.lastReq.IdempotencyKey != "key-1" {
		t.Fatalf("gateway idempotency key = %q, want the trimmed caller key %q", gw.lastReq.IdempotencyKey, "key-1")
	}
}

func TestUsecase_CreateIntentWithoutIdempotencyKey(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUsecase(t, gw, newFakeIdempotency())

	if _, err := uc.CreateIntent(context.Background(), CreateIntentInput{
		TransactionID: "txn-1",
		AmountCents:   1000,
	}); err != nil {
		t.Fatalf("CreateIntent() error = %v", err)
	}

	if gw.lastReq.IdempotencyKey != "" {
		t.Fatalf("gateway idempotency key = %q, want empty when the caller sent none", gw.lastReq.IdempotencyKey)
	}
}

func TestUsecase_CreateIntentGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: goerror.NewUpstream(errors.New("boom"), "Payment gateway rejected the request")}
	uc := newUsecase(t, gw, newFakeIdempotency())

	_, err := uc.CreateIntent(context.Background(), CreateIntentInput{
		TransactionID: "txn-1",
		AmountCents:   1000,
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("CreateIntent() error = %v, want upstream error", err)
	}

	if gerr.Code() != goerror.CodeUpstream {
		t.Fatalf("CreateIntent() code = %v, want %v", gerr.Code(), goerror.CodeUpstream)
	}
}
