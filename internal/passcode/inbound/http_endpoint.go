package inbound

import (
	"github.com/loanforge/loanforge/internal/passcode/usecase"
	"github.com/loanforge/loanforge/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for issuing and verifying passcodes.
type HTTPEndpoint struct {
	uc uc
}

// Send issues a one-time passcode for a transaction and recipient pair and
// queues it for delivery.
func (h *HTTPEndpoint) Send(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Issue(r.Context(), usecase.IssueInput{
		TransactionID: req.TransactionID,
		Recipient:     req.Recipient,
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{
		TransactionID: resp.TransactionID,
		Recipient:     resp.Recipient,
		Channel:       string(resp.Channel),
		ExpiresAt:     resp.ExpiresAt,
	}, nil
}

// Verify checks a submitted passcode without consuming it.
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		TransactionID: req.TransactionID,
		Recipient:     req.Recipient,
		Code:          req.Code,
	})
	if err != nil {
		return nil, err
	}

	out := VerifyOTPResponse{Verified: resp.Valid}
	if !resp.Valid {
		out.Reason = "Invalid or expired code"
	}

	return out, nil
}
