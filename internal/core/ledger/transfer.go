package ledger

import (
	"context"
	"encoding/json"
	"fmt"
)

// ExportSnapshot は現在の状態の複製を返します。状態は変更しません。
func (e *Engine) ExportSnapshot(_ context.Context) (Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Snapshot{
		Workers:       append([]Worker{}, e.workers...),
		AllAttendance: cloneBook(e.attendance),
		Payments:      append([]Payment{}, e.payments...),
	}, nil
}

// MarshalSnapshot はエクスポートファイルの内容を返します。
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	if s.Workers == nil {
		s.Workers = []Worker{}
	}
	if s.AllAttendance == nil {
		s.AllAttendance = AttendanceBook{}
	}
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ledger: marshal snapshot: %w", err)
	}
	return b, nil
}

// ImportSnapshot はエクスポートファイルで3つのコレクションを丸ごと置き換えます。
// 1件でも不正なレコードがあれば何も変更せずにエラーを返します。
func (e *Engine) ImportSnapshot(ctx context.Context, blob []byte) error {
	snap, err := decodeSnapshot(blob)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.workers = snap.Workers
	e.attendance = snap.AllAttendance
	e.payments = snap.Payments
	e.persist(ctx, KeyWorkers, KeyAttendance, KeyPayments)
	e.logger.Info("ledger: snapshot imported", "workers", len(snap.Workers), "payments", len(snap.Payments))
	return nil
}

// ResetAll は全データを消去し、保存済みのキーも削除します。元に戻せません。
func (e *Engine) ResetAll(ctx context.Context) error {
	e.mu.Lock()
	e.workers = nil
	e.attendance = make(AttendanceBook)
	e.payments = nil
	keys := []string{KeyWorkers, KeyAttendance, KeyPayments}
	err := e.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		for _, key := range keys {
			if err := e.store.Remove(txCtx, key); err != nil {
				return fmt.Errorf("remove %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		e.recordFailure(fmt.Errorf("%w: %w", ErrPersistence, err), keys)
	}
	e.mu.Unlock()

	e.runResetHooks(ctx)
	e.logger.Info("ledger: all data reset")
	return nil
}
