package app

import (
	"context"
	"net/http"

	"github.com/loanforge/loanforge/internal/pkg/clock"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goroutine"
	"github.com/loanforge/loanforge/internal/pkg/idempotency"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/mail"
	"github.com/loanforge/loanforge/internal/pkg/messaging"
	"github.com/loanforge/loanforge/internal/pkg/router"
	"github.com/loanforge/loanforge/internal/pkg/sms"
	"github.com/loanforge/loanforge/internal/pkg/storage"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       sms.SMS
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
