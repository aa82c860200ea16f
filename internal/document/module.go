// Package document generates loan agreements and repayment schedules as PDF
// downloads, archiving a copy of everything it issues.
package document

import (
	"github.com/loanforge/loanforge/internal/document/inbound"
	"github.com/loanforge/loanforge/internal/document/outbound/archive"
	"github.com/loanforge/loanforge/internal/document/outbound/pdf"
	"github.com/loanforge/loanforge/internal/document/usecase"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goroutine"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/router"
	"github.com/loanforge/loanforge/internal/pkg/storage"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	renderer := pdf.NewRenderer(dep.Instrument)
	arc := archive.NewArchive(dep.Storage, dep.Config.GetString("modules.document.archive_bucket"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoPDF:     renderer,
		RepoArchive: arc,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UUID:        dep.UUID,
		Goroutine:   dep.Goroutine,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
