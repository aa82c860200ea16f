package usecase

import (
	"context"

	"github.com/loanforge/loanforge/internal/document/entity"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goroutine"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoPDF interface {
	RenderContract(ctx context.Context, c entity.Contract, schedule []entity.Installment) ([]byte, error)
	RenderSchedule(ctx context.Context, loan entity.Loan, schedule []entity.Installment) ([]byte, error)
}

type repoArchive interface {
	Store(ctx context.Context, key, contentType string, data []byte) error
}

type Usecase struct {
	repoPDF     repoPDF
	repoArchive repoArchive
	validator   validator.Validator
	cfg         config.Config
	uuid        uid.StringID
	goroutine   *goroutine.Manager
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoPDF     repoPDF
	RepoArchive repoArchive
	Validator   validator.Validator
	Config      config.Config
	UUID        uid.StringID
	Goroutine   *goroutine.Manager
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoPDF:     dep.RepoPDF,
		repoArchive: dep.RepoArchive,
		validator:   dep.Validator,
		cfg:         dep.Config,
		uuid:        dep.UUID,
		goroutine:   dep.Goroutine,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("document.usecase").Start(ctx, name)
}
