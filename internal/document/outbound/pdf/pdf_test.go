package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/loanforge/loanforge/internal/document/entity"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
)

func testContract() (entity.Contract, []entity.Installment) {
	loan := entity.Loan{
		PrincipalCents:   1_000_000,
		FlatFeeCents:     50_000,
		TermMonths:       12,
		PaymentFrequency: entity.FrequencyMonthly,
		StartDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Tier:             entity.TierPremium,
	}

	schedule, _ := entity.BuildSchedule(loan)

	return entity.Contract{
		Borrower: entity.Party{
			FullName: "Jordan Smith",
			Address:  "12 Main Street, Springfield",
			Email:    "jordan@example.com",
			Phone:    "+1 555 123 4567",
		},
		Lender: entity.Party{
			FullName: "Loanforge Capital LLC",
			Address:  "800 Market Street, San Francisco",
			Email:    "contracts@loanforge.example",
			Phone:    "+1 555 987 6543",
		},
		Loan: loan,
	}, schedule
}

func TestRenderer_RenderContract(t *testing.T) {
	r := NewRenderer(instrument.NewNoop())
	contract, schedule := testContract()

	out, err := r.RenderContract(context.Background(), contract, schedule)
	if err != nil {
		t.Fatalf("RenderContract() error = %v", err)
	}

	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("RenderContract() output does not start with a PDF header")
	}
}

func TestRenderer_RenderSchedule(t *testing.T) {
	r := NewRenderer(instrument.NewNoop())
	contract, schedule := testContract()

	out, err := r.RenderSchedule(context.Background(), contract.Loan, schedule)
	if err != nil {
		t.Fatalf("RenderSchedule() error = %v", err)
	}

	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("RenderSchedule() output does not start with a PDF header")
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "$0.00"},
		{cents: 5, want: "$0.05"},
		{cents: 105000, want: "$1050.00"},
		{cents: 123456789, want: "$1234567.89"},
		{cents: -250, want: "-$2.50"},
	}

	for _, tt := range tests {
		if got := formatCents(tt.cents); got != tt.want {
			t.Fatalf("formatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
