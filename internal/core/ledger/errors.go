package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// エラー種別です。個別のエラーはいずれかを包み、errors.Is で判定できます。
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrPersistence  = errors.New("persistence failure")
	ErrImportFormat = errors.New("malformed import")
)

var (
	ErrWorkerNotFound      = fmt.Errorf("ledger: worker %w", ErrNotFound)
	ErrPaymentNotFound     = fmt.Errorf("ledger: payment %w", ErrNotFound)
	ErrWorkerHasAttendance = fmt.Errorf("ledger: worker has attendance records: %w", ErrConflict)
	ErrNoAttendance        = fmt.Errorf("ledger: no attendance recorded for the day: %w", ErrInvalidState)
	ErrAbsentCheckOut      = fmt.Errorf("ledger: cannot check out an absent worker: %w", ErrInvalidState)
	ErrAlreadyCheckedOut   = fmt.Errorf("ledger: worker already checked out: %w", ErrInvalidState)
	ErrNotJSON             = fmt.Errorf("ledger: import is not a JSON object: %w", ErrImportFormat)
	ErrMissingSnapshotKey  = fmt.Errorf("ledger: import must contain workers, allAttendance and payments: %w: %w", ErrImportFormat, ErrValidation)
)

// FieldIssue は入力検証で見つかった1項目分の問題です。
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError は入力検証エラーです。ErrValidation を包みます。
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" ("+issue.Rule+")")
	}
	return "ledger: invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidField(field, rule string) error {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Rule: rule}}}
}

// importError はインポート対象の具体的な不正箇所を ErrImportFormat で包みます。
func importError(format string, args ...any) error {
	return fmt.Errorf("ledger: import: %s: %w", fmt.Sprintf(format, args...), ErrImportFormat)
}
