package entity

import (
	"errors"
	"time"

	"github.com/samber/lo"
)

// ErrUnknownFrequency indicates a payment frequency outside the supported set.
var ErrUnknownFrequency = errors.New("unknown payment frequency")

// Installment is one scheduled repayment.
type Installment struct {
	Number       int
	DueDate      time.Time
	AmountCents  int64
	BalanceCents int64
}

// installmentCount converts the term in months into the number of payments
// for the frequency, rounding half up.
func installmentCount(termMonths int, freq Frequency) (int, error) {
	switch freq {
	case FrequencyMonthly:
		return termMonths, nil
	case FrequencyBiweekly:
		return (termMonths*26 + 6) / 12, nil
	case FrequencyWeekly:
		return (termMonths*52 + 6) / 12, nil
	default:
		return 0, ErrUnknownFrequency
	}
}

// dueDate returns when installment number n (1-based) comes due.
func dueDate(start time.Time, freq Frequency, n int) time.Time {
	switch freq {
	case FrequencyMonthly:
		return start.AddDate(0, n, 0)
	case FrequencyBiweekly:
		return start.AddDate(0, 0, 14*n)
	default:
		return start.AddDate(0, 0, 7*n)
	}
}

// BuildSchedule spreads the total repayment evenly across the term. Every
// installment is the same cent-rounded amount except the last one, which
// absorbs the rounding remainder so the column sums exactly to the total.
func BuildSchedule(loan Loan) ([]Installment, error) {
	count, err := installmentCount(loan.TermMonths, loan.PaymentFrequency)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, errors.New("schedule requires at least one installment")
	}

	total := loan.TotalCents()
	base := total / int64(count)
	final := total - base*int64(count-1)

	remaining := total

	return lo.Map(lo.Range(count), func(i int, _ int) Installment {
		amount := base
		if i == count-1 {
			amount = final
		}
		remaining -= amount

		return Installment{
			Number:       i + 1,
			DueDate:      dueDate(loan.StartDate, loan.PaymentFrequency, i+1),
			AmountCents:  amount,
			BalanceCents: remaining,
		}
	}), nil
}
