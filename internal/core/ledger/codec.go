package ledger

import (
	"context"
	"encoding/json"
	"fmt"
)

const quarantineSuffix = ".quarantine"

func (e *Engine) encode(key string) (string, error) {
	var (
		b   []byte
		err error
	)
	switch key {
	case KeyWorkers:
		workers := e.workers
		if workers == nil {
			workers = []Worker{}
		}
		b, err = json.Marshal(workers)
	case KeyAttendance:
		book := e.attendance
		if book == nil {
			book = AttendanceBook{}
		}
		b, err = json.Marshal(book)
	case KeyPayments:
		payments := e.payments
		if payments == nil {
			payments = []Payment{}
		}
		b, err = json.Marshal(payments)
	default:
		return "", fmt.Errorf("ledger: unknown key %q", key)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// quarantine は解析できない保存値を別キーへ退避します。次回の書き込みで元の値が失われるためです。
func (e *Engine) quarantine(ctx context.Context, key, raw string, cause error) {
	e.logger.Error("ledger: stored value is not valid JSON, starting empty", "key", key, "err", cause)
	if err := e.store.Set(ctx, key+quarantineSuffix, raw); err != nil {
		e.logger.Warn("ledger: quarantine write failed", "key", key, "err", err)
	}
}

func (e *Engine) restoreWorkers(ctx context.Context, raw string) []Worker {
	if raw == "" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.quarantine(ctx, KeyWorkers, raw, err)
		return nil
	}
	workers := make([]Worker, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for idx, item := range items {
		w, err := decodeWorker(item)
		if err == nil {
			if _, dup := seen[w.ID]; dup {
				err = fmt.Errorf("duplicate id %q", w.ID)
			}
		}
		if err != nil {
			e.logger.Warn("ledger: skipping stored worker", "index", idx, "err", err)
			continue
		}
		seen[w.ID] = struct{}{}
		workers = append(workers, w)
	}
	return workers
}

func (e *Engine) restoreAttendance(ctx context.Context, raw string) AttendanceBook {
	book := make(AttendanceBook)
	if raw == "" {
		return book
	}
	var days map[string]map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		e.quarantine(ctx, KeyAttendance, raw, err)
		return book
	}
	for date, entries := range days {
		if _, err := parseDate("date", date); err != nil {
			e.logger.Warn("ledger: skipping stored attendance day", "date", date, "err", err)
			continue
		}
		for workerID, item := range entries {
			rec, err := decodeRecord(item)
			if err != nil {
				e.logger.Warn("ledger: skipping stored attendance record", "date", date, "workerId", workerID, "err", err)
				continue
			}
			if book[date] == nil {
				book[date] = make(map[string]DailyRecord)
			}
			book[date][workerID] = rec
		}
	}
	return book
}

func (e *Engine) restorePayments(ctx context.Context, raw string) []Payment {
	if raw == "" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		e.quarantine(ctx, KeyPayments, raw, err)
		return nil
	}
	payments := make([]Payment, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for idx, item := range items {
		p, err := decodePayment(item)
		if err == nil {
			if _, dup := seen[p.ID]; dup {
				err = fmt.Errorf("duplicate id %q", p.ID)
			}
		}
		if err != nil {
			e.logger.Warn("ledger: skipping stored payment", "index", idx, "err", err)
			continue
		}
		seen[p.ID] = struct{}{}
		payments = append(payments, p)
	}
	return payments
}

func decodeWorker(raw json.RawMessage) (Worker, error) {
	var w Worker
	if err := json.Unmarshal(raw, &w); err != nil {
		return Worker{}, err
	}
	if err := checkStruct(w); err != nil {
		return Worker{}, err
	}
	return w, nil
}

func decodeRecord(raw json.RawMessage) (DailyRecord, error) {
	var rec DailyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return DailyRecord{}, err
	}
	if err := checkStruct(rec); err != nil {
		return DailyRecord{}, err
	}
	return rec, nil
}

func decodePayment(raw json.RawMessage) (Payment, error) {
	var p Payment
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payment{}, err
	}
	if err := checkStruct(p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// decodeSnapshot はインポート用に厳密に解析します。1件でも不正があればエラーを返します。
func decodeSnapshot(blob []byte) (Snapshot, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(blob, &root); err != nil || root == nil {
		return Snapshot{}, ErrNotJSON
	}
	rawWorkers, okW := root[KeyWorkers]
	rawBook, okA := root[KeyAttendance]
	rawPayments, okP := root[KeyPayments]
	if !okW || !okA || !okP {
		return Snapshot{}, ErrMissingSnapshotKey
	}

	var snap Snapshot

	var workerItems []json.RawMessage
	if err := json.Unmarshal(rawWorkers, &workerItems); err != nil {
		return Snapshot{}, importError("workers must be an array")
	}
	seenWorkers := make(map[string]struct{}, len(workerItems))
	snap.Workers = make([]Worker, 0, len(workerItems))
	for idx, item := range workerItems {
		w, err := decodeWorker(item)
		if err != nil {
			return Snapshot{}, importError("workers[%d]: %v", idx, err)
		}
		if _, dup := seenWorkers[w.ID]; dup {
			return Snapshot{}, importError("workers[%d]: duplicate id %q", idx, w.ID)
		}
		seenWorkers[w.ID] = struct{}{}
		snap.Workers = append(snap.Workers, w)
	}

	var days map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rawBook, &days); err != nil {
		return Snapshot{}, importError("allAttendance must be an object of dates")
	}
	snap.AllAttendance = make(AttendanceBook, len(days))
	for date, entries := range days {
		if _, err := parseDate("date", date); err != nil || len(date) != len(DateLayout) {
			return Snapshot{}, importError("allAttendance: bad date key %q", date)
		}
		day := make(map[string]DailyRecord, len(entries))
		for workerID, item := range entries {
			rec, err := decodeRecord(item)
			if err != nil {
				return Snapshot{}, importError("allAttendance[%s][%s]: %v", date, workerID, err)
			}
			day[workerID] = rec
		}
		snap.AllAttendance[date] = day
	}

	var paymentItems []json.RawMessage
	if err := json.Unmarshal(rawPayments, &paymentItems); err != nil {
		return Snapshot{}, importError("payments must be an array")
	}
	seenPayments := make(map[string]struct{}, len(paymentItems))
	snap.Payments = make([]Payment, 0, len(paymentItems))
	for idx, item := range paymentItems {
		p, err := decodePayment(item)
		if err != nil {
			return Snapshot{}, importError("payments[%d]: %v", idx, err)
		}
		if _, dup := seenPayments[p.ID]; dup {
			return Snapshot{}, importError("payments[%d]: duplicate id %q", idx, p.ID)
		}
		seenPayments[p.ID] = struct{}{}
		snap.Payments = append(snap.Payments, p)
	}
	return snap, nil
}
