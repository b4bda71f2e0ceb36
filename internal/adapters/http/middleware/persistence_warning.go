package middleware

import "net/http"

// PersistenceWarningValue は保存に失敗したリクエストに付ける Warning ヘッダーの値です。
const PersistenceWarningValue = `199 shramik-hisab "change kept in memory but not saved to storage"`

type warningWriter struct {
	http.ResponseWriter
	failures    func() int
	before      int
	wroteHeader bool
}

func (w *warningWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.failures() > w.before {
			w.Header().Set("Warning", PersistenceWarningValue)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *warningWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *warningWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// PersistenceWarning はリクエスト処理中に永続化の失敗回数が増えた場合に Warning ヘッダーを付けます。
func PersistenceWarning(failures func() int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if failures == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&warningWriter{ResponseWriter: w, failures: failures, before: failures()}, r)
		})
	}
}
