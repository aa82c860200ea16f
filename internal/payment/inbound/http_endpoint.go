package inbound

import (
	"github.com/loanforge/loanforge/internal/payment/usecase"
	"github.com/loanforge/loanforge/internal/pkg/router"
)

// HeaderIdempotencyKey lets callers retry intent creation safely.
const HeaderIdempotencyKey = "X-Idempotency-Key"

// HTTPEndpoint exposes HTTP handlers for payment workflows.
type HTTPEndpoint struct {
	uc uc
}

// CreateIntent registers a payment intent with the gateway and returns the
// client secret needed to confirm it.
func (h *HTTPEndpoint) CreateIntent(r *router.Request) (any, error) {
	var req CreateIntentRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateIntent(r.Context(), usecase.CreateIntentInput{
		TransactionID:  req.TransactionID,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		IdempotencyKey: r.Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return CreateIntentResponse{
		ReferenceID:  resp.ReferenceID,
		ClientSecret: resp.ClientSecret,
		AmountCents:  resp.AmountCents,
		Currency:     resp.Currency,
		Status:       resp.Status,
	}, nil
}
