package usecase

import (
	"context"

	"github.com/loanforge/loanforge/internal/payment/entity"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/idempotency"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoGateway interface {
	CreateIntent(ctx context.Context, req entity.IntentRequest) (*entity.Intent, error)
}

type Usecase struct {
	repoGateway repoGateway
	idemp       idempotency.Idempotency
	validator   validator.Validator
	cfg         config.Config
	uid         uid.NumberID
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoGateway repoGateway
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoGateway: dep.RepoGateway,
		idemp:       dep.Idempotency,
		validator:   dep.Validator,
		cfg:         dep.Config,
		uid:         dep.UID,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("payment.usecase").Start(ctx, name)
}
