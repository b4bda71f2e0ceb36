package ledger

import (
	"context"
	"strings"
)

// AddWorkerInput は作業員登録時の入力です。
type AddWorkerInput struct {
	Name        string
	PhoneNumber string
	DailyWage   float64
	PhotoURL    string
}

// UpdateWorkerInput は作業員更新時の入力です。nil の項目は変更しません。
type UpdateWorkerInput struct {
	ID          string
	Name        *string
	PhoneNumber *string
	DailyWage   *float64
	PhotoURL    *string
}

// AddWorker は作業員を登録します。写真が未指定の場合はプレースホルダ画像を割り当てます。
func (e *Engine) AddWorker(ctx context.Context, in AddWorkerInput) (*Worker, error) {
	worker := Worker{
		ID:          e.ids.NewID(),
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		DailyWage:   in.DailyWage,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		CreatedAt:   e.clock.Now(),
	}
	if worker.PhotoURL == "" {
		worker.PhotoURL = e.placeholderPhoto()
	}
	if err := checkStruct(worker); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.workers = append(e.workers, worker)
	e.persist(ctx, KeyWorkers)
	return &worker, nil
}

// UpdateWorker は作業員情報を部分更新します。ID と登録日時は変わりません。
func (e *Engine) UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.findWorker(in.ID)
	if !ok {
		return nil, ErrWorkerNotFound
	}

	merged := e.workers[idx]
	if in.Name != nil {
		merged.Name = strings.TrimSpace(*in.Name)
	}
	if in.PhoneNumber != nil {
		merged.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.DailyWage != nil {
		merged.DailyWage = *in.DailyWage
	}
	if in.PhotoURL != nil {
		merged.PhotoURL = strings.TrimSpace(*in.PhotoURL)
		if merged.PhotoURL == "" {
			merged.PhotoURL = e.placeholderPhoto()
		}
	}
	if err := checkStruct(merged); err != nil {
		return nil, err
	}

	e.workers[idx] = merged
	e.persist(ctx, KeyWorkers)
	updated := merged
	return &updated, nil
}

// DeleteWorker は勤怠記録を持たない作業員を削除します。支払記録は残ります。
func (e *Engine) DeleteWorker(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.findWorker(id)
	if !ok {
		return ErrWorkerNotFound
	}
	if e.hasAttendance(id) {
		return ErrWorkerHasAttendance
	}

	e.workers = append(e.workers[:idx:idx], e.workers[idx+1:]...)
	e.persist(ctx, KeyWorkers)
	return nil
}

// GetWorker は作業員を1件取得します。
func (e *Engine) GetWorker(_ context.Context, id string) (*Worker, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.findWorker(id)
	if !ok {
		return nil, ErrWorkerNotFound
	}
	worker := e.workers[idx]
	return &worker, nil
}

// ListWorkers は登録順に作業員を返します。
func (e *Engine) ListWorkers(_ context.Context) ([]Worker, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]Worker{}, e.workers...), nil
}

func (e *Engine) hasAttendance(workerID string) bool {
	for _, day := range e.attendance {
		if _, ok := day[workerID]; ok {
			return true
		}
	}
	return false
}
