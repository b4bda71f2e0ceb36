package ledger

import (
	"context"
	"sort"
	"time"
)

// MarkAttendanceInput は勤怠登録時の入力です。Date が空の場合は当日です。
type MarkAttendanceInput struct {
	WorkerID string
	Date     string
	Status   Status
}

// MarkAttendance は勤怠を登録(上書き)し、同じ日の自動支払を作り直します。
// 出勤・半日は出勤時刻を現在時刻にし、欠勤は自動支払を持ちません。
func (e *Engine) MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Attendance, error) {
	date, err := e.resolveDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	if !isValidStatus(in.Status) {
		return nil, invalidField("status", "oneof")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.findWorker(in.WorkerID)
	if !ok {
		return nil, ErrWorkerNotFound
	}
	worker := e.workers[idx]

	rec := DailyRecord{Status: in.Status}
	if in.Status != StatusAbsent {
		now := e.clock.Now()
		rec.CheckIn = &now
	}
	day := e.attendance[date]
	if day == nil {
		day = make(map[string]DailyRecord)
		e.attendance[date] = day
	}
	day[worker.ID] = rec

	autoID := AutoPaymentID(date, worker.ID)
	e.removePayment(autoID)
	if amount := autoPaymentAmount(worker.DailyWage, in.Status); amount > 0 {
		e.prependPayment(Payment{
			ID:       autoID,
			WorkerID: worker.ID,
			Date:     date,
			Amount:   amount,
			Note:     autoPaymentNote(date, in.Status),
		})
	}

	e.persist(ctx, KeyAttendance, KeyPayments)
	marked := toAttendance(date, worker.ID, rec)
	return &marked, nil
}

// CheckOut は出勤済みの記録に退勤時刻を記録します。
func (e *Engine) CheckOut(ctx context.Context, workerID, date string) (*Attendance, error) {
	day, err := e.resolveDate("date", date)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.attendance[day][workerID]
	if !ok {
		return nil, ErrNoAttendance
	}
	switch {
	case rec.Status == StatusAbsent:
		return nil, ErrAbsentCheckOut
	case rec.CheckOut != nil:
		return nil, ErrAlreadyCheckedOut
	case rec.CheckIn == nil:
		return nil, ErrNoAttendance
	}

	now := e.clock.Now()
	rec.CheckOut = &now
	e.attendance[day][workerID] = rec

	e.persist(ctx, KeyAttendance)
	out := toAttendance(day, workerID, rec)
	return &out, nil
}

// AttendanceOn は指定日の勤怠を作業員の登録順で返します。削除済み作業員の記録は含みません。
func (e *Engine) AttendanceOn(_ context.Context, date string) ([]Attendance, error) {
	day, err := e.resolveDate("date", date)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	records := e.attendance[day]
	out := make([]Attendance, 0, len(records))
	for _, w := range e.workers {
		if rec, ok := records[w.ID]; ok {
			out = append(out, toAttendance(day, w.ID, rec))
		}
	}
	return out, nil
}

// WorkerAttendance は作業員の勤怠履歴を新しい日付順で返します。
func (e *Engine) WorkerAttendance(_ context.Context, workerID string) ([]Attendance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.workerExists(workerID) {
		return nil, ErrWorkerNotFound
	}
	return e.historyOf(workerID), nil
}

func (e *Engine) historyOf(workerID string) []Attendance {
	var out []Attendance
	for date, day := range e.attendance {
		if rec, ok := day[workerID]; ok {
			out = append(out, toAttendance(date, workerID, rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// autoPaymentNote は自動支払の備考を返します。日付は "January 2, 2006" 形式です。
func autoPaymentNote(date string, status Status) string {
	label := date
	if t, err := time.Parse(DateLayout, date); err == nil {
		label = t.Format("January 2, 2006")
	}
	if status == StatusHalfDay {
		return "Half-day wage for attendance on " + label
	}
	return "Daily wage for attendance on " + label
}
