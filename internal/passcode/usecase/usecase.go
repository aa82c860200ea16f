package usecase

import (
	"context"
	"time"

	"github.com/loanforge/loanforge/internal/passcode/entity"
	"github.com/loanforge/loanforge/internal/pkg/clock"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// PasscodeIssuedEvent carries a freshly issued passcode to the delivery side.
type PasscodeIssuedEvent struct {
	TransactionID string
	Recipient     string
	Channel       string
	Code          string
	ExpiresAt     time.Time
}

type repoStore interface {
	Save(ctx context.Context, pc entity.Passcode) error
	Find(ctx context.Context, transactionID, recipient string) (*entity.Passcode, error)
}

type repoMessaging interface {
	PublishPasscodeIssued(ctx context.Context, msg PasscodeIssuedEvent) error
}

type codeSource interface {
	Generate() (string, error)
}

type Usecase struct {
	repoStore     repoStore
	repoMessaging repoMessaging
	codes         codeSource
	validator     validator.Validator
	cfg           config.Config
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoStore     repoStore
	RepoMessaging repoMessaging
	Codes         codeSource
	Validator     validator.Validator
	Config        config.Config
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoMessaging: dep.RepoMessaging,
		codes:         dep.Codes,
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("passcode.usecase").Start(ctx, name)
}
