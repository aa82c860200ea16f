package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/loanforge/loanforge/internal/document/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
)

const contentTypePDF = "application/pdf"

type PartyInput struct {
	FullName string `validate:"required,max=120"`
	Address  string `validate:"required,max=240"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,phone"`
}

type LoanInput struct {
	PrincipalCents   int64  `validate:"required,gt=0"`
	FlatFeeCents     int64  `validate:"gte=0"`
	TermMonths       int    `validate:"required,gt=0,lte=480"`
	PaymentFrequency string `validate:"required,oneof=monthly biweekly weekly"`
	StartDate        string `validate:"required,dateiso"`
	Tier             string `validate:"required,oneof=Essential Maximum Premium"`
}

type GenerateContractInput struct {
	Borrower PartyInput
	Lender   PartyInput
	Loan     LoanInput
}

type GenerateScheduleInput struct {
	Loan LoanInput
}

// DocumentOutput is a rendered document ready to stream back to the caller.
type DocumentOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// GenerateContract renders a signed-ready loan agreement with the repayment
// schedule annexed, and archives a copy in the background.
func (s *Usecase) GenerateContract(ctx context.Context, in GenerateContractInput) (*DocumentOutput, error) {
	ctx, span := s.startSpan(ctx, "GenerateContract")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	loan, err := s.toLoan(in.Loan)
	if err != nil {
		return nil, err
	}

	schedule, err := entity.BuildSchedule(loan)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "loan", err.Error())
	}

	contract := entity.Contract{
		Borrower: toParty(in.Borrower),
		Lender:   toParty(in.Lender),
		Loan:     loan,
	}

	content, err := s.repoPDF.RenderContract(ctx, contract, schedule)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render contract", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &DocumentOutput{
		FileName:    "loan-agreement-" + s.uuid.Generate() + ".pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}
	s.archive(ctx, out)

	return out, nil
}

// GenerateSchedule renders the repayment schedule as a standalone document.
func (s *Usecase) GenerateSchedule(ctx context.Context, in GenerateScheduleInput) (*DocumentOutput, error) {
	ctx, span := s.startSpan(ctx, "GenerateSchedule")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	loan, err := s.toLoan(in.Loan)
	if err != nil {
		return nil, err
	}

	schedule, err := entity.BuildSchedule(loan)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "loan", err.Error())
	}

	content, err := s.repoPDF.RenderSchedule(ctx, loan, schedule)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render schedule", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &DocumentOutput{
		FileName:    "repayment-schedule-" + s.uuid.Generate() + ".pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}
	s.archive(ctx, out)

	return out, nil
}

// archive keeps a copy of the document in object storage without holding up
// the response. The upload outlives the request, so cancelation is detached.
func (s *Usecase) archive(ctx context.Context, doc *DocumentOutput) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoArchive.Store(ctx, doc.FileName, doc.ContentType, doc.Content); err != nil {
			slog.ErrorContext(ctx, "failed to archive document", "file", doc.FileName, "error", err)
			return err
		}

		return nil
	})
}

func (s *Usecase) toLoan(in LoanInput) (entity.Loan, error) {
	start, err := time.Parse(time.DateOnly, strings.TrimSpace(in.StartDate))
	if err != nil {
		return entity.Loan{}, goerror.NewInvalidInput(nil, "start_date", "must be a date in YYYY-MM-DD format")
	}

	return entity.Loan{
		PrincipalCents:   in.PrincipalCents,
		FlatFeeCents:     in.FlatFeeCents,
		TermMonths:       in.TermMonths,
		PaymentFrequency: entity.Frequency(in.PaymentFrequency),
		StartDate:        start,
		Tier:             entity.Tier(in.Tier),
	}, nil
}

func toParty(in PartyInput) entity.Party {
	return entity.Party{
		FullName: strings.TrimSpace(in.FullName),
		Address:  strings.TrimSpace(in.Address),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
	}
}
