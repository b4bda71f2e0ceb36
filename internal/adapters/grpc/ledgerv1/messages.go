package ledgerv1

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Worker は作業員のワイヤ表現です。時刻は RFC3339 文字列です。
type Worker struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	DailyWage   float64 `json:"dailyWage"`
	PhotoUrl    string  `json:"photoUrl"`
	CreatedAt   string  `json:"createdAt"`
}

// Attendance は勤怠記録のワイヤ表現です。
type Attendance struct {
	Id       string `json:"id"`
	WorkerId string `json:"workerId"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
}

// Payment は支払のワイヤ表現です。
type Payment struct {
	Id       string  `json:"id"`
	WorkerId string  `json:"workerId"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
	Auto     bool    `json:"auto"`
}

// WorkerSummary は作業員ごとの集計です。
type WorkerSummary struct {
	Worker       *Worker `json:"worker"`
	PresentDays  int32   `json:"presentDays"`
	HalfDays     int32   `json:"halfDays"`
	AbsentDays   int32   `json:"absentDays"`
	TotalEarned  float64 `json:"totalEarned"`
	TotalPaid    float64 `json:"totalPaid"`
	Balance      float64 `json:"balance"`
	State        string  `json:"state"`
	BalanceLabel string  `json:"balanceLabel"`
}

// DailyStats は1日分の集計です。
type DailyStats struct {
	Date         string  `json:"date"`
	EarnedToday  float64 `json:"earnedToday"`
	PaidToday    float64 `json:"paidToday"`
	OverallDue   float64 `json:"overallDue"`
	PresentCount int32   `json:"presentCount"`
	HalfDayCount int32   `json:"halfDayCount"`
	AbsentCount  int32   `json:"absentCount"`
}

type AddWorkerRequest struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	DailyWage   float64 `json:"dailyWage"`
	PhotoUrl    string  `json:"photoUrl,omitempty"`
}

type AddWorkerResponse struct {
	Worker *Worker `json:"worker"`
}

// UpdateWorkerRequest は nil の項目を変更しません。
type UpdateWorkerRequest struct {
	Id          string                  `json:"id"`
	Name        *wrapperspb.StringValue `json:"name,omitempty"`
	PhoneNumber *wrapperspb.StringValue `json:"phoneNumber,omitempty"`
	DailyWage   *wrapperspb.DoubleValue `json:"dailyWage,omitempty"`
	PhotoUrl    *wrapperspb.StringValue `json:"photoUrl,omitempty"`
}

type UpdateWorkerResponse struct {
	Worker *Worker `json:"worker"`
}

type DeleteWorkerRequest struct {
	Id string `json:"id"`
}

type ListWorkersResponse struct {
	Workers []*Worker `json:"workers"`
}

type MarkAttendanceRequest struct {
	WorkerId string `json:"workerId"`
	Date     string `json:"date,omitempty"`
	Status   string `json:"status"`
}

type MarkAttendanceResponse struct {
	Attendance *Attendance `json:"attendance"`
}

type CheckOutRequest struct {
	WorkerId string `json:"workerId"`
	Date     string `json:"date,omitempty"`
}

type CheckOutResponse struct {
	Attendance *Attendance `json:"attendance"`
}

// ListAttendanceRequest は WorkerId 指定時にその作業員の履歴、未指定時に Date の出勤簿を返します。
type ListAttendanceRequest struct {
	Date     string `json:"date,omitempty"`
	WorkerId string `json:"workerId,omitempty"`
}

type ListAttendanceResponse struct {
	Attendance []*Attendance `json:"attendance"`
}

type RecordPaymentRequest struct {
	WorkerId string  `json:"workerId"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date,omitempty"`
	Note     string  `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type UpdatePaymentRequest struct {
	Id     string                  `json:"id"`
	Amount *wrapperspb.DoubleValue `json:"amount,omitempty"`
	Date   *wrapperspb.StringValue `json:"date,omitempty"`
	Note   *wrapperspb.StringValue `json:"note,omitempty"`
}

type UpdatePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	Id string `json:"id"`
}

type ListPaymentsRequest struct {
	WorkerId string `json:"workerId,omitempty"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type GetBalanceRequest struct {
	WorkerId    string `json:"workerId"`
	ThroughDate string `json:"throughDate,omitempty"`
}

type GetBalanceResponse struct {
	WorkerId  string  `json:"workerId"`
	WageOwed  float64 `json:"wageOwed"`
	TotalPaid float64 `json:"totalPaid"`
	Balance   float64 `json:"balance"`
	State     string  `json:"state"`
	Label     string  `json:"label"`
}

type ListWorkerSummariesResponse struct {
	Summaries []*WorkerSummary `json:"summaries"`
}

type GetDailyStatsRequest struct {
	Date string `json:"date,omitempty"`
}

type GetDailyStatsResponse struct {
	Stats *DailyStats `json:"stats"`
}

// ExportSnapshotResponse の Snapshot はエクスポートファイルと同じ JSON オブジェクトです。
type ExportSnapshotResponse struct {
	Snapshot json.RawMessage `json:"snapshot"`
}

// ImportSnapshotRequest は Confirm が true の場合のみ受け付けます。
type ImportSnapshotRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Confirm  bool            `json:"confirm"`
}

type ResetAllRequest struct {
	Confirm bool `json:"confirm"`
}
