package app

import (
	"log/slog"
	"os"

	"github.com/loanforge/loanforge/internal/document"
	"github.com/loanforge/loanforge/internal/notification"
	"github.com/loanforge/loanforge/internal/passcode"
	"github.com/loanforge/loanforge/internal/payment"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.passcode.enabled") {
		err := passcode.New(passcode.Dependency{
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			Clock:      a.clock,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module passcode", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.payment.enabled") {
		err := payment.New(payment.Dependency{
			Router:      a.router,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Validator:   a.validator,
		})
		if err != nil {
			slog.Error("failed to init module payment", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.document.enabled") {
		err := document.New(document.Dependency{
			Router:     a.router,
			Storage:    a.storage,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module document", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
			SMS:        a.sms,
		})
		if err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
