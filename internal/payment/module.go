// Package payment creates payment intents on the external gateway for loan
// repayments.
package payment

import (
	"github.com/loanforge/loanforge/internal/payment/inbound"
	"github.com/loanforge/loanforge/internal/payment/outbound/gateway"
	"github.com/loanforge/loanforge/internal/payment/usecase"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/idempotency"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/router"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type Dependency struct {
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoGateway := gateway.NewStripe(dep.Config.GetString("modules.payment.stripe_secret_key"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoGateway: repoGateway,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UID:         dep.UID,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
