package ledger

import (
	"context"
	"strings"
)

// RecordPaymentInput は支払登録時の入力です。Date が空の場合は当日です。
type RecordPaymentInput struct {
	WorkerID string
	Amount   float64
	Date     string
	Note     string
}

// UpdatePaymentInput は支払更新時の入力です。ID と作業員は変更できません。
type UpdatePaymentInput struct {
	ID     string
	Amount *float64
	Date   *string
	Note   *string
}

// PaymentFilter は支払一覧の絞り込み条件です。
type PaymentFilter struct {
	WorkerID string
}

// RecordPayment は手動の支払を登録します。一覧の先頭に追加されます。
func (e *Engine) RecordPayment(ctx context.Context, in RecordPaymentInput) (*Payment, error) {
	date, err := e.resolveDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	payment := Payment{
		ID:       e.ids.NewID(),
		WorkerID: in.WorkerID,
		Date:     date,
		Amount:   in.Amount,
		Note:     strings.TrimSpace(in.Note),
	}
	if err := checkStruct(payment); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.workerExists(in.WorkerID) {
		return nil, ErrWorkerNotFound
	}
	e.prependPayment(payment)
	e.persist(ctx, KeyPayments)
	return &payment, nil
}

// UpdatePayment は支払を部分更新します。自動支払も編集できますが、同じ日の勤怠を再登録すると上書きされます。
func (e *Engine) UpdatePayment(ctx context.Context, in UpdatePaymentInput) (*Payment, error) {
	var date string
	if in.Date != nil {
		normalized, err := parseDate("date", *in.Date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.findPayment(in.ID)
	if !ok {
		return nil, ErrPaymentNotFound
	}

	merged := e.payments[idx]
	if in.Amount != nil {
		merged.Amount = *in.Amount
	}
	if in.Date != nil {
		merged.Date = date
	}
	if in.Note != nil {
		merged.Note = strings.TrimSpace(*in.Note)
	}
	if err := checkStruct(merged); err != nil {
		return nil, err
	}

	e.payments[idx] = merged
	e.persist(ctx, KeyPayments)
	updated := merged
	return &updated, nil
}

// DeletePayment は支払を削除します。勤怠記録には影響しません。
func (e *Engine) DeletePayment(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.removePayment(id) {
		return ErrPaymentNotFound
	}
	e.persist(ctx, KeyPayments)
	return nil
}

// ListPayments は新しい順に支払を返します。削除済み作業員の支払は含みません。
func (e *Engine) ListPayments(_ context.Context, filter PaymentFilter) ([]Payment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if filter.WorkerID != "" && !e.workerExists(filter.WorkerID) {
		return nil, ErrWorkerNotFound
	}

	out := make([]Payment, 0, len(e.payments))
	for _, p := range e.payments {
		if filter.WorkerID != "" && p.WorkerID != filter.WorkerID {
			continue
		}
		if !e.workerExists(p.WorkerID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (e *Engine) findPayment(id string) (int, bool) {
	for idx := range e.payments {
		if e.payments[idx].ID == id {
			return idx, true
		}
	}
	return -1, false
}

func (e *Engine) prependPayment(p Payment) {
	e.payments = append([]Payment{p}, e.payments...)
}

func (e *Engine) removePayment(id string) bool {
	idx, ok := e.findPayment(id)
	if !ok {
		return false
	}
	e.payments = append(e.payments[:idx:idx], e.payments[idx+1:]...)
	return true
}
