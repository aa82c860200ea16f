package inbound

import "github.com/loanforge/loanforge/internal/document/usecase"

type PartyModel struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (m PartyModel) toInput() usecase.PartyInput {
	return usecase.PartyInput{
		FullName: m.FullName,
		Address:  m.Address,
		Email:    m.Email,
		Phone:    m.Phone,
	}
}

type LoanModel struct {
	PrincipalCents   int64  `json:"principal_cents"`
	FlatFeeCents     int64  `json:"flat_fee_cents"`
	TermMonths       int    `json:"term_months"`
	PaymentFrequency string `json:"payment_frequency"`
	StartDate        string `json:"start_date"`
	Tier             string `json:"tier"`
}

func (m LoanModel) toInput() usecase.LoanInput {
	return usecase.LoanInput{
		PrincipalCents:   m.PrincipalCents,
		FlatFeeCents:     m.FlatFeeCents,
		TermMonths:       m.TermMonths,
		PaymentFrequency: m.PaymentFrequency,
		StartDate:        m.StartDate,
		Tier:             m.Tier,
	}
}

type ContractRequest struct {
	Borrower PartyModel `json:"borrower"`
	Lender   PartyModel `json:"lender"`
	Loan     LoanModel  `json:"loan"`
}

type ScheduleRequest struct {
	Loan LoanModel `json:"loan"`
}
