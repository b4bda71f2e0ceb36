package ledger

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	validate     = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateDailyRecord, DailyRecord{})
	return v
}

// validateDailyRecord は退勤時刻が出勤済みかつ欠勤以外の記録にしか存在しないことを検証します。
func validateDailyRecord(sl validator.StructLevel) {
	rec := sl.Current().Interface().(DailyRecord)
	if rec.CheckOut == nil {
		return
	}
	if rec.CheckIn == nil {
		sl.ReportError(rec.CheckOut, "checkOut", "CheckOut", "checkin_required", "")
		return
	}
	if rec.Status == StatusAbsent {
		sl.ReportError(rec.CheckOut, "checkOut", "CheckOut", "not_absent", "")
	}
}

// checkStruct は構造体を検証し、失敗時は *ValidationError を返します。
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]FieldIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Rule: fe.Tag()})
	}
	return &ValidationError{Issues: issues}
}

// parseDate は YYYY-MM-DD 形式の日付を検証して正規形で返します。
func parseDate(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return "", invalidField(field, "date")
	}
	return t.Format(DateLayout), nil
}
