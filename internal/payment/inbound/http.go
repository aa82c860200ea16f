package inbound

import (
	"context"

	"github.com/loanforge/loanforge/internal/payment/usecase"
	"github.com/loanforge/loanforge/internal/pkg/router"
)

type uc interface {
	CreateIntent(ctx context.Context, in usecase.CreateIntentInput) (*usecase.CreateIntentOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/payments/intents", end.CreateIntent)
}
