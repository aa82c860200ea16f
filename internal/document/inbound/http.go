package inbound

import (
	"context"

	"github.com/loanforge/loanforge/internal/document/usecase"
	"github.com/loanforge/loanforge/internal/pkg/router"
)

type uc interface {
	GenerateContract(ctx context.Context, in usecase.GenerateContractInput) (*usecase.DocumentOutput, error)
	GenerateSchedule(ctx context.Context, in usecase.GenerateScheduleInput) (*usecase.DocumentOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/documents/contract", end.Contract)
	r.POST("/api/v1/documents/schedule", end.Schedule)
}
