package report

import (
	"fmt"
	"io"

	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"github.com/xuri/excelize/v2"
)

// SummarySheet は集計表のシート名です。
const SummarySheet = "Summary"

var summaryHeader = []any{
	"Worker ID", "Name", "Phone", "Daily Wage",
	"Present Days", "Half Days", "Absent Days",
	"Total Earned", "Total Paid", "Balance", "Status",
}

// WriteSummary は作業員ごとの集計を XLSX で書き出します。
func WriteSummary(w io.Writer, summaries []ledger.WorkerSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}
	if err := f.SetRowStyle(SummarySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("report: header style: %w", err)
	}

	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report: cell name: %w", err)
		}
		row := []any{
			s.Worker.ID, s.Worker.Name, s.Worker.PhoneNumber, s.Worker.DailyWage,
			s.PresentDays, s.HalfDays, s.AbsentDays,
			s.TotalEarned, s.TotalPaid, s.Balance, s.BalanceLabel,
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("report: write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "K", 16); err != nil {
		return fmt.Errorf("report: column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}
