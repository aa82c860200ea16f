package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/loanforge/loanforge/internal/document/entity"
	"github.com/loanforge/loanforge/internal/pkg/config"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/goroutine"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/validator"
)

type fakeRenderer struct {
	contractCalls int
	scheduleCalls int
	lastSchedule  []entity.Installment
	err           error
}

func (f *fakeRenderer) RenderContract(_ context.Context, _ entity.Contract, schedule []entity.Installment) ([]byte, error) {
	f.contractCalls++
	f.lastSchedule = schedule

	if f.err != nil {
		return nil, f.err
	}

	return []byte("%PDF-contract"), nil
}

func (f *fakeRenderer) RenderSchedule(_ context.Context, _ entity.Loan, schedule []entity.Installment) ([]byte, error) {
	f.scheduleCalls++
	f.lastSchedule = schedule

	if f.err != nil {
		return nil, f.err
	}

	return []byte("%PDF-schedule"), nil
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeArchive) Store(_ context.Context, key, _ string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.keys = append(f.keys, key)

	return nil
}

type fakeStringID struct{}

func (fakeStringID) Generate() string {
	return "doc-id"
}

type fixture struct {
	uc       *Usecase
	renderer *fakeRenderer
	archive  *fakeArchive
	gm       *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  document:\n    archive_bucket: documents\n"))
	if err != nil {
		t.Fatalf("config.NewViperFromBytes() error = %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator.NewV10Validator() error = %v", err)
	}

	f := &fixture{
		renderer: &fakeRenderer{},
		archive:  &fakeArchive{},
		gm:       goroutine.NewManager(4),
	}

	f.uc = New(Dependency{
		RepoPDF:     f.renderer,
		RepoArchive: f.archive,
		Validator:   val,
		Config:      cfg,
		UUID:        fakeStringID{},
		Goroutine:   f.gm,
		Instrument:  instrument.NewNoop(),
	})

	return f
}

func validParty() PartyInput {
	return PartyInput{
		FullName: "Jordan Smith",
		Address:  "12 Main Street, Springfield",
		Email:    "jordan@example.com",
		Phone:    "+1 (555) 123-4567",
	}
}

func validLoan() LoanInput {
	return LoanInput{
		PrincipalCents:   1_000_000,
		FlatFeeCents:     50_000,
		TermMonths:       12,
		PaymentFrequency: "monthly",
		StartDate:        "2025-01-15",
		Tier:             "Essential",
	}
}

func TestUsecase_GenerateContract(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.GenerateContract(context.Background(), GenerateContractInput{
		Borrower: validParty(),
		Lender:   validParty(),
		Loan:     validLoan(),
	})
	if err != nil {
		t.Fatalf("GenerateContract() error = %v", err)
	}

	if out.ContentType != "application/pdf" {
		t.Fatalf("content type = %q, want %q", out.ContentType, "application/pdf")
	}

	if !strings.HasPrefix(out.FileName, "loan-agreement-") || !strings.HasSuffix(out.FileName, ".pdf") {
		t.Fatalf("file name = %q, want loan-agreement-*.pdf", out.FileName)
	}

	if len(f.renderer.lastSchedule) != 12 {
		t.Fatalf("rendered schedule length = %d, want 12", len(f.renderer.lastSchedule))
	}

	if err := f.gm.Wait(); err != nil {
		t.Fatalf("goroutine.Wait() error = %v", err)
	}

	if len(f.archive.keys) != 1 || f.archive.keys[0] != out.FileName {
		t.Fatalf("archived keys = %v, want exactly [%s]", f.archive.keys, out.FileName)
	}
}

func TestUsecase_GenerateContractInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerateContractInput)
	}{
		{name: "MissingBorrowerName", mutate: func(in *GenerateContractInput) { in.Borrower.FullName = "" }},
		{name: "BadEmail", mutate: func(in *GenerateContractInput) { in.Lender.Email = "not-an-email" }},
		{name: "BadPhone", mutate: func(in *GenerateContractInput) { in.Borrower.Phone = "abc" }},
		{name: "BadFrequency", mutate: func(in *GenerateContractInput) { in.Loan.PaymentFrequency = "quarterly" }},
		{name: "BadStartDate", mutate: func(in *GenerateContractInput) { in.Loan.StartDate = "15-01-2025" }},
		{name: "BadTier", mutate: func(in *GenerateContractInput) { in.Loan.Tier = "Platinum" }},
		{name: "ZeroPrincipal", mutate: func(in *GenerateContractInput) { in.Loan.PrincipalCents = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			in := GenerateContractInput{Borrower: validParty(), Lender: validParty(), Loan: validLoan()}
			tt.mutate(&in)

			_, err := f.uc.GenerateContract(context.Background(), in)

			var gerr *goerror.Error
			if !errors.As(err, &gerr) {
				t.Fatalf("GenerateContract() error = %v, want a structured validation error", err)
			}

			if f.renderer.contractCalls != 0 {
				t.Fatalf("renderer calls = %d, want none after rejected input", f.renderer.contractCalls)
			}
		})
	}
}

func TestUsecase_GenerateSchedule(t *testing.T) {
	f := newFixture(t)

	loan := validLoan()
	loan.PaymentFrequency = "biweekly"

	out, err := f.uc.GenerateSchedule(context.Background(), GenerateScheduleInput{Loan: loan})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if !strings.HasPrefix(out.FileName, "repayment-schedule-") {
		t.Fatalf("file name = %q, want repayment-schedule-*.pdf", out.FileName)
	}

	if len(f.renderer.lastSchedule) != 26 {
		t.Fatalf("rendered schedule length = %d, want 26", len(f.renderer.lastSchedule))
	}
}

func TestUsecase_GenerateScheduleRendererFailure(t *testing.T) {
	f := newFixture(t)
	f.renderer.err = errors.New("render failed")

	_, err := f.uc.GenerateSchedule(context.Background(), GenerateScheduleInput{Loan: validLoan()})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("GenerateSchedule() error = %v, want server error", err)
	}

	if gerr.Code() != goerror.CodeInternal {
		t.Fatalf("GenerateSchedule() code = %v, want %v", gerr.Code(), goerror.CodeInternal)
	}
}
