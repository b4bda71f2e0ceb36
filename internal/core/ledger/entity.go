package ledger

import (
	"strings"
	"time"
)

// DateLayout は勤怠・支払の日付キーの書式です。
const DateLayout = "2006-01-02"

const (
	attendanceIDPrefix  = "att-"
	autoPaymentIDPrefix = "p-att-"
)

// Status は1日分の勤怠区分を表します。
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// Worker は日給制の作業員エンティティです。
type Worker struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"min=2"`
	PhoneNumber string    `json:"phoneNumber" validate:"phone10"`
	DailyWage   float64   `json:"dailyWage" validate:"gt=0"`
	PhotoURL    string    `json:"photoUrl" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DailyRecord は作業員1人・1日分の勤怠記録です。日付と作業員 ID は AttendanceBook のキーが保持します。
type DailyRecord struct {
	Status   Status     `json:"status" validate:"oneof=present half-day absent"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
}

// AttendanceBook は 日付 → 作業員 ID → 勤怠記録 の二段マップです。
type AttendanceBook map[string]map[string]DailyRecord

// Attendance は勤怠記録のフラットな表現です。
type Attendance struct {
	ID       string     `json:"id"`
	WorkerID string     `json:"workerId"`
	Date     string     `json:"date"`
	Status   Status     `json:"status"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
}

// Payment は支払記録です。手動登録分と勤怠から自動生成された分が同じ一覧に並びます。
type Payment struct {
	ID       string  `json:"id" validate:"required"`
	WorkerID string  `json:"workerId" validate:"required"`
	Date     string  `json:"date" validate:"datetime=2006-01-02"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Note     string  `json:"note,omitempty"`
}

// IsAuto は勤怠から自動生成された支払かどうかを返します。
func (p Payment) IsAuto() bool {
	return strings.HasPrefix(p.ID, autoPaymentIDPrefix)
}

// Snapshot は一括エクスポート/インポートの単位です。
type Snapshot struct {
	Workers       []Worker       `json:"workers"`
	AllAttendance AttendanceBook `json:"allAttendance"`
	Payments      []Payment      `json:"payments"`
}

// AttendanceID は勤怠記録の合成 ID を返します。
func AttendanceID(date, workerID string) string {
	return attendanceIDPrefix + date + "-" + workerID
}

// AutoPaymentID は勤怠に紐づく自動支払の ID を返します。
func AutoPaymentID(date, workerID string) string {
	return autoPaymentIDPrefix + date + "-" + workerID
}

func toAttendance(date, workerID string, rec DailyRecord) Attendance {
	return Attendance{
		ID:       AttendanceID(date, workerID),
		WorkerID: workerID,
		Date:     date,
		Status:   rec.Status,
		CheckIn:  cloneTime(rec.CheckIn),
		CheckOut: cloneTime(rec.CheckOut),
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func cloneRecord(rec DailyRecord) DailyRecord {
	return DailyRecord{
		Status:   rec.Status,
		CheckIn:  cloneTime(rec.CheckIn),
		CheckOut: cloneTime(rec.CheckOut),
	}
}

func cloneBook(book AttendanceBook) AttendanceBook {
	out := make(AttendanceBook, len(book))
	for date, day := range book {
		copied := make(map[string]DailyRecord, len(day))
		for workerID, rec := range day {
			copied[workerID] = cloneRecord(rec)
		}
		out[date] = copied
	}
	return out
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	default:
		return false
	}
}
