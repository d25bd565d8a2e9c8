package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")

	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent errors)", calls)
	}
}

func TestRetryRetriesTransientErrors(t *testing.T) {
	calls := 0

	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})

	if err != nil {
		t.Errorf("error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("font-bytes"))
	}))
	defer srv.Close()

	data, err := Get(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(data) != "font-bytes" {
		t.Errorf("Get = %q, want %q", data, "font-bytes")
	}
}

func TestGetClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
	}{
		{"server error is retryable", http.StatusBadGateway, true},
		{"not found is permanent", http.StatusNotFound, false},
		{"forbidden is permanent", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := Get(context.Background(), srv.Client(), srv.URL)
			if err == nil {
				t.Fatal("expected an error")
			}
			if isRetryable(err) != tt.retryable {
				t.Errorf("isRetryable = %v, want %v", isRetryable(err), tt.retryable)
			}
		})
	}
}

func TestGetWithRetryRecovers(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := GetWithRetry(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("GetWithRetry error: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("GetWithRetry = %q, want %q", data, "ok")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
