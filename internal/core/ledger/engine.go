package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewLocationClock は指定したタイムゾーンの現在時刻を返す Clock を生成します。nil の場合は UTC を使います。
func NewLocationClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// IDGenerator は作業員・支払の ID を採番します。並行呼び出しに安全である必要があります。
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Options は Engine の任意の依存を指定します。ゼロ値の項目には既定値を使います。
type Options struct {
	Clock             Clock
	IDs               IDGenerator
	Tx                TransactionManager
	Logger            *slog.Logger
	PlaceholderPhotos []string
}

// DefaultPlaceholderPhotos は写真未指定の作業員に割り当てる画像の既定リストです。
var DefaultPlaceholderPhotos = []string{
	"https://placehold.co/100x100.png?text=W1",
	"https://placehold.co/100x100.png?text=W2",
	"https://placehold.co/100x100.png?text=W3",
	"https://placehold.co/100x100.png?text=W4",
}

// PersistenceStatus は永続化の失敗状況です。
type PersistenceStatus struct {
	Failures     int
	LastError    string
	LastFailedAt time.Time
}

// Engine は作業員・勤怠・支払の状態を保持し、賃金と残高を計算します。
// 公開メソッドはすべて mu で直列化されます。
type Engine struct {
	mu     sync.RWMutex
	store  KVStore
	clock  Clock
	ids    IDGenerator
	tx     TransactionManager
	logger *slog.Logger
	photos []string

	workers    []Worker
	attendance AttendanceBook
	payments   []Payment

	hooksMu    sync.Mutex
	resetHooks []func(context.Context) error

	status PersistenceStatus
}

// UseCase は台帳ユースケースの公開インターフェースです。
type UseCase interface {
	AddWorker(ctx context.Context, in AddWorkerInput) (*Worker, error)
	UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error)
	DeleteWorker(ctx context.Context, id string) error
	GetWorker(ctx context.Context, id string) (*Worker, error)
	ListWorkers(ctx context.Context) ([]Worker, error)

	MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Attendance, error)
	CheckOut(ctx context.Context, workerID, date string) (*Attendance, error)
	AttendanceOn(ctx context.Context, date string) ([]Attendance, error)
	WorkerAttendance(ctx context.Context, workerID string) ([]Attendance, error)

	RecordPayment(ctx context.Context, in RecordPaymentInput) (*Payment, error)
	UpdatePayment(ctx context.Context, in UpdatePaymentInput) (*Payment, error)
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	WageOwed(ctx context.Context, workerID, throughDate string) (float64, error)
	TotalPaid(ctx context.Context, workerID string) (float64, error)
	Balance(ctx context.Context, workerID string) (float64, error)
	WorkerSummary(ctx context.Context, workerID string) (*WorkerSummary, error)
	ListWorkerSummaries(ctx context.Context) ([]WorkerSummary, error)
	TodayStats(ctx context.Context, date string) (*DailyStats, error)

	ExportSnapshot(ctx context.Context) (Snapshot, error)
	ImportSnapshot(ctx context.Context, blob []byte) error
	ResetAll(ctx context.Context) error

	PersistenceStatus() PersistenceStatus
}

var _ UseCase = (*Engine)(nil)

// NewEngine は Engine を生成します。状態は空で、永続化済みの内容は Load で読み込みます。
func NewEngine(store KVStore, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = NewLocationClock(time.UTC)
	}
	if opts.IDs == nil {
		opts.IDs = uuidGenerator{}
	}
	if opts.Tx == nil {
		opts.Tx = noopTransactionManager{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	photos := opts.PlaceholderPhotos
	if len(photos) == 0 {
		photos = DefaultPlaceholderPhotos
	}
	return &Engine{
		store:      store,
		clock:      opts.Clock,
		ids:        opts.IDs,
		tx:         opts.Tx,
		logger:     opts.Logger,
		photos:     append([]string(nil), photos...),
		attendance: make(AttendanceBook),
	}
}

// AddResetHook は ResetAll 実行後に呼ばれる処理を登録します。
func (e *Engine) AddResetHook(fn func(context.Context) error) {
	if fn == nil {
		return
	}
	e.hooksMu.Lock()
	defer e.hooksMu.Unlock()
	e.resetHooks = append(e.resetHooks, fn)
}

// PersistenceStatus は書き込み失敗の累計と直近の失敗を返します。
func (e *Engine) PersistenceStatus() PersistenceStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Load は KV ストアから3つのコレクションを読み込み、メモリ上の状態を置き換えます。
// 不正なレコードはスキップしてログに残します。
func (e *Engine) Load(ctx context.Context) error {
	raw := make(map[string]string, 3)
	err := e.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		for _, key := range []string{KeyWorkers, KeyAttendance, KeyPayments} {
			value, ok, err := e.store.Get(txCtx, key)
			if err != nil {
				return fmt.Errorf("%w: load %s: %w", ErrPersistence, key, err)
			}
			if ok {
				raw[key] = value
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	workers := e.restoreWorkers(ctx, raw[KeyWorkers])
	book := e.restoreAttendance(ctx, raw[KeyAttendance])
	payments := e.restorePayments(ctx, raw[KeyPayments])

	e.mu.Lock()
	defer e.mu.Unlock()
	e.workers = workers
	e.attendance = book
	e.payments = payments
	e.logger.Info("ledger: state loaded", "workers", len(workers), "attendanceDays", len(book), "payments", len(payments))
	return nil
}

// today は Clock のタイムゾーンでの日付キーを返します。
func (e *Engine) today() string {
	return e.clock.Now().Format(DateLayout)
}

func (e *Engine) resolveDate(field, value string) (string, error) {
	if value == "" {
		return e.today(), nil
	}
	return parseDate(field, value)
}

func (e *Engine) placeholderPhoto() string {
	return e.photos[rand.IntN(len(e.photos))]
}

// persist は指定したキーを書き込みます。mu を保持した状態で呼び出します。
// 失敗してもメモリ上の状態は戻さず、記録とログのみ行います。
func (e *Engine) persist(ctx context.Context, keys ...string) {
	err := e.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		for _, key := range keys {
			value, err := e.encode(key)
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			if err := e.store.Set(txCtx, key, value); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		e.recordFailure(fmt.Errorf("%w: %w", ErrPersistence, err), keys)
	}
}

func (e *Engine) recordFailure(err error, keys []string) {
	e.status.Failures++
	e.status.LastError = err.Error()
	e.status.LastFailedAt = e.clock.Now()
	e.logger.Warn("ledger: persistence write failed", "keys", keys, "err", err)
}

func (e *Engine) runResetHooks(ctx context.Context) {
	e.hooksMu.Lock()
	hooks := append([]func(context.Context) error(nil), e.resetHooks...)
	e.hooksMu.Unlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		e.logger.Warn("ledger: reset hook failed", "err", err)
	}
}

func (e *Engine) findWorker(id string) (int, bool) {
	for idx := range e.workers {
		if e.workers[idx].ID == id {
			return idx, true
		}
	}
	return -1, false
}

func (e *Engine) workerExists(id string) bool {
	_, ok := e.findWorker(id)
	return ok
}
