package report

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"github.com/xuri/excelize/v2"
)

func sampleSummary() ledger.WorkerSummary {
	return ledger.WorkerSummary{
		Worker: ledger.Worker{
			ID:          "w-1",
			Name:        "Suresh Kumar",
			PhoneNumber: "9876543210",
			DailyWage:   600,
		},
		PresentDays:  1,
		HalfDays:     1,
		TotalEarned:  900,
		TotalPaid:    1400,
		Balance:      500,
		State:        ledger.BalanceAdvance,
		BalanceLabel: "Advance ₹500",
	}
}

func TestWriteStatement(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2023, 10, 1, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := WriteStatement(&buf, Statement{
		Summary: sampleSummary(),
		Attendance: []ledger.Attendance{
			{ID: "att-2023-10-02-w-1", WorkerID: "w-1", Date: "2023-10-02", Status: ledger.StatusHalfDay, CheckIn: &checkIn},
			{ID: "att-2023-10-01-w-1", WorkerID: "w-1", Date: "2023-10-01", Status: ledger.StatusPresent, CheckIn: &checkIn},
		},
		Payments: []ledger.Payment{
			{ID: "p-1", WorkerID: "w-1", Date: "2023-10-03", Amount: 500, Note: "advance"},
		},
		GeneratedAt: time.Date(2023, 10, 3, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("WriteStatement returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF output, got %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestRupees(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		600:     "Rs. 600.00",
		1250.5:  "Rs. 1,250.50",
		277.5:   "Rs. 277.50",
		0:       "Rs. 0.00",
		12345.6: "Rs. 12,345.60",
	}
	for amount, want := range cases {
		if got := rupees(amount); got != want {
			t.Errorf("rupees(%v) = %q, want %q", amount, got, want)
		}
	}
	if got := balanceLine(-400); got != "Due Rs. 400.00" {
		t.Errorf("unexpected due line: %q", got)
	}
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteSummary(&buf, []ledger.WorkerSummary{sampleSummary()}); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader returned error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[0][0] != "Worker ID" || rows[0][10] != "Status" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	row := rows[1]
	if row[0] != "w-1" || row[1] != "Suresh Kumar" || row[7] != "900" || row[9] != "500" || row[10] != "Advance ₹500" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestBadge(t *testing.T) {
	t.Parallel()

	b, err := Badge("w-1")
	if err != nil {
		t.Fatalf("Badge returned error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode returned error: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != BadgeSize || bounds.Dy() != BadgeSize {
		t.Fatalf("unexpected badge size: %v", bounds)
	}
	if !strings.HasPrefix(BadgeContent("w-1"), "worker:") {
		t.Fatalf("unexpected badge content: %s", BadgeContent("w-1"))
	}
}
