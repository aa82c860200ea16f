// Package pdf renders loan agreements and repayment schedules.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/loanforge/loanforge/internal/document/entity"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

const dateLayout = "January 2, 2006"

// tierClauses are the service-level terms included per tier.
var tierClauses = map[entity.Tier]string{
	entity.TierEssential: "The Essential tier includes standard servicing. Payment reminders are " +
		"sent by email, and a late fee applies after a 10-day grace period.",
	entity.TierMaximum: "The Maximum tier includes priority servicing. The borrower may defer one " +
		"installment per year, and the grace period is extended to 15 days.",
	entity.TierPremium: "The Premium tier includes dedicated servicing. The borrower may defer up " +
		"to two installments per year, the grace period is extended to 20 days, and early " +
		"repayment carries no penalty.",
}

// Renderer produces PDF documents with fpdf.
type Renderer struct {
	ins instrument.Instrumentation
}

func NewRenderer(ins instrument.Instrumentation) *Renderer {
	return &Renderer{ins: ins}
}

func (r *Renderer) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("document.outbound.pdf").Start(ctx, name)
}

// RenderContract renders the full loan agreement, including the repayment
// schedule as an annex.
func (r *Renderer) RenderContract(ctx context.Context, c entity.Contract, schedule []entity.Installment) ([]byte, error) {
	_, span := r.startSpan(ctx, "RenderContract")
	defer span.End()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Loan Agreement", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "LOAN AGREEMENT", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, fmt.Sprintf(
		"This Loan Agreement is entered into on %s between the parties identified below.",
		c.Loan.StartDate.Format(dateLayout)), "", "L", false)
	doc.Ln(4)

	r.writeParty(doc, "LENDER", c.Lender)
	r.writeParty(doc, "BORROWER", c.Borrower)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, "TERMS", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)

	terms := [][2]string{
		{"Principal", formatCents(c.Loan.PrincipalCents)},
		{"Flat fee", formatCents(c.Loan.FlatFeeCents)},
		{"Total repayable", formatCents(c.Loan.TotalCents())},
		{"Term", strconv.Itoa(c.Loan.TermMonths) + " months"},
		{"Payment frequency", string(c.Loan.PaymentFrequency)},
		{"First payment from", c.Loan.StartDate.Format(dateLayout)},
		{"Service tier", string(c.Loan.Tier)},
	}
	for _, row := range terms {
		doc.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, "SERVICE TIER TERMS", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, tierClauses[c.Loan.Tier], "", "L", false)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(90, 6, "Lender signature: ____________________", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 6, "Borrower signature: ____________________", "", 1, "L", false, 0, "")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, "ANNEX A: REPAYMENT SCHEDULE", "", 1, "L", false, 0, "")
	r.writeScheduleTable(doc, schedule)

	return output(doc)
}

// RenderSchedule renders the repayment schedule as a standalone document.
func (r *Renderer) RenderSchedule(ctx context.Context, loan entity.Loan, schedule []entity.Installment) ([]byte, error) {
	_, span := r.startSpan(ctx, "RenderSchedule")
	defer span.End()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Repayment Schedule", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "REPAYMENT SCHEDULE", "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, fmt.Sprintf(
		"Total repayable %s over %d %s installments starting %s.",
		formatCents(loan.TotalCents()), len(schedule), loan.PaymentFrequency,
		loan.StartDate.Format(dateLayout)), "", "L", false)
	doc.Ln(4)

	r.writeScheduleTable(doc, schedule)

	return output(doc)
}

func (r *Renderer) writeParty(doc *fpdf.Fpdf, label string, p entity.Party) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, label, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, p.FullName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, p.Address, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, p.Email+"  |  "+p.Phone, "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func (r *Renderer) writeScheduleTable(doc *fpdf.Fpdf, schedule []entity.Installment) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
	doc.CellFormat(55, 7, "Due date", "1", 0, "L", false, 0, "")
	doc.CellFormat(45, 7, "Amount", "1", 0, "R", false, 0, "")
	doc.CellFormat(45, 7, "Balance after", "1", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, inst := range schedule {
		doc.CellFormat(15, 6, strconv.Itoa(inst.Number), "1", 0, "C", false, 0, "")
		doc.CellFormat(55, 6, inst.DueDate.Format(dateLayout), "1", 0, "L", false, 0, "")
		doc.CellFormat(45, 6, formatCents(inst.AmountCents), "1", 0, "R", false, 0, "")
		doc.CellFormat(45, 6, formatCents(inst.BalanceCents), "1", 1, "R", false, 0, "")
	}
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
