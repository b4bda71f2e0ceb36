package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Statement は作業員1人分の賃金明細の内容です。
type Statement struct {
	Summary     ledger.WorkerSummary
	Attendance  []ledger.Attendance
	Payments    []ledger.Payment
	GeneratedAt time.Time
}

var printer = message.NewPrinter(language.English)

// rupees は PDF の標準フォントで表示できる形式で金額を整形します。
func rupees(amount float64) string {
	return printer.Sprintf("Rs. %v", number.Decimal(amount, number.MaxFractionDigits(2), number.MinFractionDigits(2)))
}

func balanceLine(balance float64) string {
	switch ledger.StateOf(balance) {
	case ledger.BalanceDue:
		return "Due " + rupees(-balance)
	case ledger.BalanceAdvance:
		return "Advance " + rupees(balance)
	default:
		return "Paid"
	}
}

// WriteStatement は賃金明細を PDF で書き出します。
func WriteStatement(w io.Writer, s Statement) error {
	worker := s.Summary.Worker

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Wage statement "+worker.ID, false)
	pdf.SetCreationDate(s.GeneratedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Wage Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Worker: %s (%s)", worker.Name, worker.ID)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Phone: %s", worker.PhoneNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Daily wage: %s", rupees(worker.DailyWage)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", s.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(8)
	header := func(cols []string, widths []float64) {
		pdf.SetFont("Helvetica", "B", 10)
		for i, col := range cols {
			pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	attWidths := []float64{35, 30, 30, 30, 45}
	header([]string{"Date", "Status", "Check-in", "Check-out", "Wage"}, attWidths)
	for _, a := range s.Attendance {
		pdf.CellFormat(attWidths[0], 7, a.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(attWidths[1], 7, string(a.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(attWidths[2], 7, clock(a.CheckIn), "1", 0, "L", false, 0, "")
		pdf.CellFormat(attWidths[3], 7, clock(a.CheckOut), "1", 0, "L", false, 0, "")
		pdf.CellFormat(attWidths[4], 7, rupees(ledger.DayWage(worker.DailyWage, a.Status)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Payments")
	pdf.Ln(8)
	payWidths := []float64{35, 100, 35}
	header([]string{"Date", "Note", "Amount"}, payWidths)
	for _, p := range s.Payments {
		pdf.CellFormat(payWidths[0], 7, p.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(payWidths[1], 7, tr(p.Note), "1", 0, "L", false, 0, "")
		pdf.CellFormat(payWidths[2], 7, rupees(p.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Days: %d present, %d half, %d absent",
		s.Summary.PresentDays, s.Summary.HalfDays, s.Summary.AbsentDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total earned: %s", rupees(s.Summary.TotalEarned)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total paid: %s", rupees(s.Summary.TotalPaid)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Balance: %s", balanceLine(s.Summary.Balance)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: render statement: %w", err)
	}
	return nil
}

func clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}
