package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// BalanceState は残高の符号による区分です。
type BalanceState string

const (
	BalanceDue     BalanceState = "due"
	BalanceAdvance BalanceState = "advance"
	BalancePaid    BalanceState = "paid"
)

// StateOf は残高の区分を返します。負は未払(作業員への支払が残っている)です。
func StateOf(balance float64) BalanceState {
	switch {
	case balance < 0:
		return BalanceDue
	case balance > 0:
		return BalanceAdvance
	default:
		return BalancePaid
	}
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount は桁区切り付きで金額を表示用に整形します。
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatBalance は残高を "Due ₹400" / "Advance ₹200" / "Paid" の形式で返します。
func FormatBalance(balance float64) string {
	switch StateOf(balance) {
	case BalanceDue:
		return "Due " + FormatAmount(-balance)
	case BalanceAdvance:
		return "Advance " + FormatAmount(balance)
	default:
		return "Paid"
	}
}

// WorkerSummary は作業員ごとの勤怠日数と収支の集計です。
type WorkerSummary struct {
	Worker       Worker       `json:"worker"`
	PresentDays  int          `json:"presentDays"`
	HalfDays     int          `json:"halfDays"`
	AbsentDays   int          `json:"absentDays"`
	TotalEarned  float64      `json:"totalEarned"`
	TotalPaid    float64      `json:"totalPaid"`
	Balance      float64      `json:"balance"`
	State        BalanceState `json:"state"`
	BalanceLabel string       `json:"balanceLabel"`
}

// DailyStats は1日分の集計です。
type DailyStats struct {
	Date         string  `json:"date"`
	EarnedToday  float64 `json:"earnedToday"`
	PaidToday    float64 `json:"paidToday"`
	OverallDue   float64 `json:"overallDue"`
	PresentCount int     `json:"presentCount"`
	HalfDayCount int     `json:"halfDayCount"`
	AbsentCount  int     `json:"absentCount"`
}

// autoPaymentAmount は勤怠区分に応じた自動支払額です。欠勤は 0 です。
func autoPaymentAmount(dailyWage float64, status Status) float64 {
	switch status {
	case StatusPresent:
		return dailyWage
	case StatusHalfDay:
		return dailyWage / 2
	default:
		return 0
	}
}

func wageContribution(dailyWage float64, status Status) decimal.Decimal {
	return decimal.NewFromFloat(autoPaymentAmount(dailyWage, status))
}

// DayWage は1日分の勤怠が賃金に加える額です。
func DayWage(dailyWage float64, status Status) float64 {
	return autoPaymentAmount(dailyWage, status)
}

// WageOwed は throughDate(空なら全期間)までの勤怠から算出した賃金を返します。
func (e *Engine) WageOwed(_ context.Context, workerID, throughDate string) (float64, error) {
	if throughDate != "" {
		normalized, err := parseDate("throughDate", throughDate)
		if err != nil {
			return 0, err
		}
		throughDate = normalized
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.findWorker(workerID)
	if !ok {
		return 0, ErrWorkerNotFound
	}
	return e.wageOwed(e.workers[idx], throughDate).InexactFloat64(), nil
}

// TotalPaid は作業員への支払総額(手動・自動の合計)を返します。
func (e *Engine) TotalPaid(_ context.Context, workerID string) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.workerExists(workerID) {
		return 0, ErrWorkerNotFound
	}
	return e.totalPaid(workerID).InexactFloat64(), nil
}

// Balance は 支払総額 - 賃金 を返します。
func (e *Engine) Balance(_ context.Context, workerID string) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.findWorker(workerID)
	if !ok {
		return 0, ErrWorkerNotFound
	}
	return e.balance(e.workers[idx]).InexactFloat64(), nil
}

// WorkerSummary は作業員1人分の集計を返します。
func (e *Engine) WorkerSummary(_ context.Context, workerID string) (*WorkerSummary, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.findWorker(workerID)
	if !ok {
		return nil, ErrWorkerNotFound
	}
	summary := e.summarize(e.workers[idx])
	return &summary, nil
}

// ListWorkerSummaries は全作業員の集計を登録順に返します。
func (e *Engine) ListWorkerSummaries(_ context.Context) ([]WorkerSummary, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]WorkerSummary, 0, len(e.workers))
	for _, w := range e.workers {
		out = append(out, e.summarize(w))
	}
	return out, nil
}

// TodayStats は指定日(空なら当日)の稼ぎ・支払と全体の未払残高を返します。
func (e *Engine) TodayStats(_ context.Context, date string) (*DailyStats, error) {
	day, err := e.resolveDate("date", date)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := &DailyStats{Date: day}
	earned := decimal.Zero
	records := e.attendance[day]
	for _, w := range e.workers {
		rec, ok := records[w.ID]
		if !ok {
			continue
		}
		switch rec.Status {
		case StatusPresent:
			stats.PresentCount++
		case StatusHalfDay:
			stats.HalfDayCount++
		case StatusAbsent:
			stats.AbsentCount++
		}
		earned = earned.Add(wageContribution(w.DailyWage, rec.Status))
	}

	paid := decimal.Zero
	for _, p := range e.payments {
		if p.Date == day && e.workerExists(p.WorkerID) {
			paid = paid.Add(decimal.NewFromFloat(p.Amount))
		}
	}

	overall := decimal.Zero
	for _, w := range e.workers {
		overall = overall.Add(e.balance(w))
	}

	stats.EarnedToday = earned.InexactFloat64()
	stats.PaidToday = paid.InexactFloat64()
	stats.OverallDue = overall.InexactFloat64()
	return stats, nil
}

func (e *Engine) wageOwed(w Worker, throughDate string) decimal.Decimal {
	total := decimal.Zero
	for date, day := range e.attendance {
		if throughDate != "" && date > throughDate {
			continue
		}
		if rec, ok := day[w.ID]; ok {
			total = total.Add(wageContribution(w.DailyWage, rec.Status))
		}
	}
	return total
}

func (e *Engine) totalPaid(workerID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.payments {
		if p.WorkerID == workerID {
			total = total.Add(decimal.NewFromFloat(p.Amount))
		}
	}
	return total
}

func (e *Engine) balance(w Worker) decimal.Decimal {
	return e.totalPaid(w.ID).Sub(e.wageOwed(w, ""))
}

func (e *Engine) summarize(w Worker) WorkerSummary {
	summary := WorkerSummary{Worker: w}
	for _, day := range e.attendance {
		rec, ok := day[w.ID]
		if !ok {
			continue
		}
		switch rec.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusHalfDay:
			summary.HalfDays++
		case StatusAbsent:
			summary.AbsentDays++
		}
	}
	earned := e.wageOwed(w, "")
	paid := e.totalPaid(w.ID)
	balance := paid.Sub(earned).InexactFloat64()
	summary.TotalEarned = earned.InexactFloat64()
	summary.TotalPaid = paid.InexactFloat64()
	summary.Balance = balance
	summary.State = StateOf(balance)
	summary.BalanceLabel = FormatBalance(balance)
	return summary
}
