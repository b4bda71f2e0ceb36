package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_TranslateBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.TargetLanguage != "hi" {
			t.Errorf("unexpected target language: %s", req.TargetLanguage)
		}
		out := translateResponse{}
		for _, text := range req.Texts {
			out.Translations = append(out.Translations, "["+text+"]")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-1", time.Second)
	got, err := client.TranslateBatch(context.Background(), []string{"Present", "Absent"}, "hi")
	if err != nil {
		t.Fatalf("TranslateBatch returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "[Present]" || got[1] != "[Absent]" {
		t.Fatalf("unexpected translations: %v", got)
	}
}

func TestClient_TranslateBatch_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "quota exhausted", http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnexpectedStatus) || !strings.Contains(err.Error(), "quota exhausted") {
					t.Fatalf("expected status error with body, got %v", err)
				}
			},
		},
		{
			name: "count mismatch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"translations":["only one"]}`))
			},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "expected 2 translations") {
					t.Fatalf("expected count mismatch error, got %v", err)
				}
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "decode response") {
					t.Fatalf("expected decode error, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "", time.Second).TranslateBatch(context.Background(), []string{"a", "b"}, "hi")
			tc.check(t, err)
		})
	}
}

func TestClient_TranslateBatch_EmptyInputSkipsCall(t *testing.T) {
	t.Parallel()

	client := NewClient("http://127.0.0.1:1", "", time.Second)
	got, err := client.TranslateBatch(context.Background(), nil, "hi")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result without a call, got %v %v", got, err)
	}
}
