// Package passcode issues short-lived one-time passcodes bound to a
// transaction and recipient pair, and verifies codes submitted back.
package passcode

import (
	"github.com/loanforge/loanforge/internal/passcode/inbound"
	"github.com/loanforge/loanforge/internal/passcode/outbound/codegen"
	"github.com/loanforge/loanforge/internal/passcode/outbound/mq"
	"github.com/loanforge/loanforge/internal/passcode/outbound/store"
	"github.com/loanforge/loanforge/internal/passcode/usecase"
	"github.com/loanforge/loanforge/internal/pkg/clock"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/messaging"
	"github.com/loanforge/loanforge/internal/pkg/router"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoStore := store.NewMemory(dep.Clock, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoStore:     repoStore,
		RepoMessaging: repoMsg,
		Codes:         codegen.NewNumeric(),
		Validator:     dep.Validator,
		Config:        dep.Config,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
