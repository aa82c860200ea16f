// Package notification delivers issued passcodes to recipients over email
// and SMS, consuming the delivery events published by the passcode module.
package notification

import (
	"context"

	"github.com/loanforge/loanforge/internal/notification/inbound"
	"github.com/loanforge/loanforge/internal/notification/outbound/email"
	"github.com/loanforge/loanforge/internal/notification/outbound/text"
	"github.com/loanforge/loanforge/internal/notification/usecase"
	"github.com/loanforge/loanforge/internal/pkg/clock"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goroutine"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/mail"
	"github.com/loanforge/loanforge/internal/pkg/messaging"
	"github.com/loanforge/loanforge/internal/pkg/sms"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
	SMS        sms.SMS
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)
	repoSMS := text.New(dep.SMS, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoMail:   repoMail,
		RepoSMS:    repoSMS,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
