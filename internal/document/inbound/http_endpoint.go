package inbound

import (
	"github.com/loanforge/loanforge/internal/document/usecase"
	"github.com/loanforge/loanforge/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers that stream generated documents back as
// PDF downloads.
type HTTPEndpoint struct {
	uc uc
}

// Contract generates the loan agreement for the submitted parties and terms.
func (h *HTTPEndpoint) Contract(r *router.Request) (any, error) {
	var req ContractRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateContract(r.Context(), usecase.GenerateContractInput{
		Borrower: req.Borrower.toInput(),
		Lender:   req.Lender.toInput(),
		Loan:     req.Loan.toInput(),
	})
	if err != nil {
		return nil, err
	}

	return &router.Raw{
		ContentType: resp.ContentType,
		Filename:    resp.FileName,
		Body:        resp.Content,
	}, nil
}

// Schedule generates the standalone repayment schedule for the submitted terms.
func (h *HTTPEndpoint) Schedule(r *router.Request) (any, error) {
	var req ScheduleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateSchedule(r.Context(), usecase.GenerateScheduleInput{
		Loan: req.Loan.toInput(),
	})
	if err != nil {
		return nil, err
	}

	return &router.Raw{
		ContentType: resp.ContentType,
		Filename:    resp.FileName,
		Body:        resp.Content,
	}, nil
}
