package entity

import "time"

// Frequency is how often installments come due.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyWeekly   Frequency = "weekly"
)

// Tier is the service tier the borrower signed up for. It changes which
// clauses appear in the contract.
type Tier string

const (
	TierEssential Tier = "Essential"
	TierMaximum   Tier = "Maximum"
	TierPremium   Tier = "Premium"
)

// Party is one side of the loan agreement.
type Party struct {
	FullName string
	Address  string
	Email    string
	Phone    string
}

// Loan holds the financial terms of the agreement. Monetary amounts are in
// cents to keep installment arithmetic exact.
type Loan struct {
	PrincipalCents   int64
	FlatFeeCents     int64
	TermMonths       int
	PaymentFrequency Frequency
	StartDate        time.Time
	Tier             Tier
}

// TotalCents is the full repayment obligation: principal plus the flat fee.
func (l Loan) TotalCents() int64 {
	return l.PrincipalCents + l.FlatFeeCents
}

// Contract couples the parties with the loan terms for rendering.
type Contract struct {
	Borrower Party
	Lender   Party
	Loan     Loan
}
