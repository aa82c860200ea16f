package entity

import (
	"errors"
	"testing"
	"time"
)

func baseLoan() Loan {
	return Loan{
		PrincipalCents:   1_000_000,
		FlatFeeCents:     50_000,
		TermMonths:       12,
		PaymentFrequency: FrequencyMonthly,
		StartDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Tier:             TierEssential,
	}
}

func TestBuildSchedule_InstallmentCounts(t *testing.T) {
	tests := []struct {
		name string
		freq Frequency
		term int
		want int
	}{
		{name: "MonthlyTwelve", freq: FrequencyMonthly, term: 12, want: 12},
		{name: "MonthlySix", freq: FrequencyMonthly, term: 6, want: 6},
		{name: "BiweeklyTwelve", freq: FrequencyBiweekly, term: 12, want: 26},
		{name: "BiweeklySix", freq: FrequencyBiweekly, term: 6, want: 13},
		{name: "WeeklyTwelve", freq: FrequencyWeekly, term: 12, want: 52},
		{name: "WeeklyThree", freq: FrequencyWeekly, term: 3, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := baseLoan()
			loan.PaymentFrequency = tt.freq
			loan.TermMonths = tt.term

			schedule, err := BuildSchedule(loan)
			if err != nil {
				t.Fatalf("BuildSchedule() error = %v", err)
			}

			if len(schedule) != tt.want {
				t.Fatalf("len(schedule) = %d, want %d", len(schedule), tt.want)
			}
		})
	}
}

func TestBuildSchedule_AmountsSumToTotal(t *testing.T) {
	loan := baseLoan()
	loan.PrincipalCents = 1_000_001 // forces a rounding remainder
	loan.PaymentFrequency = FrequencyBiweekly

	schedule, err := BuildSchedule(loan)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	var sum int64
	for _, inst := range schedule {
		sum += inst.AmountCents
	}

	if sum != loan.TotalCents() {
		t.Fatalf("installments sum = %d, want %d", sum, loan.TotalCents())
	}

	for _, inst := range schedule[:len(schedule)-1] {
		if inst.AmountCents != schedule[0].AmountCents {
			t.Fatalf("installment %d amount = %d, want every non-final amount equal to %d",
				inst.Number, inst.AmountCents, schedule[0].AmountCents)
		}
	}

	if last := schedule[len(schedule)-1]; last.BalanceCents != 0 {
		t.Fatalf("final balance = %d, want 0", last.BalanceCents)
	}
}

func TestBuildSchedule_DueDates(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		freq  Frequency
		first time.Time
		third time.Time
	}{
		{
			name:  "Monthly",
			freq:  FrequencyMonthly,
			first: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			third: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Biweekly",
			freq:  FrequencyBiweekly,
			first: start.AddDate(0, 0, 14),
			third: start.AddDate(0, 0, 42),
		},
		{
			name:  "Weekly",
			freq:  FrequencyWeekly,
			first: start.AddDate(0, 0, 7),
			third: start.AddDate(0, 0, 21),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := baseLoan()
			loan.PaymentFrequency = tt.freq
			loan.StartDate = start

			schedule, err := BuildSchedule(loan)
			if err != nil {
				t.Fatalf("BuildSchedule() error = %v", err)
			}

			if !schedule[0].DueDate.Equal(tt.first) {
				t.Fatalf("first due date = %v, want %v", schedule[0].DueDate, tt.first)
			}

			if !schedule[2].DueDate.Equal(tt.third) {
				t.Fatalf("third due date = %v, want %v", schedule[2].DueDate, tt.third)
			}
		})
	}
}

func TestBuildSchedule_UnknownFrequency(t *testing.T) {
	loan := baseLoan()
	loan.PaymentFrequency = Frequency("quarterly")

	_, err := BuildSchedule(loan)
	if !errors.Is(err, ErrUnknownFrequency) {
		t.Fatalf("BuildSchedule() error = %v, want %v", err, ErrUnknownFrequency)
	}
}
