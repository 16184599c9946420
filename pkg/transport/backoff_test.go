package transport_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-formsubmit/pkg/transport"
)

func TestBackoffDoublesPerAttempt(t *testing.T) {
	base := time.Second

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: time.Second},
		{attempt: 1, want: 2 * time.Second},
		{attempt: 2, want: 4 * time.Second},
		{attempt: 3, want: 8 * time.Second},
		{attempt: 10, want: 1024 * time.Second},
		{attempt: -1, want: 500 * time.Millisecond},
	}

	for _, tc := range cases {
		if got := transport.Backoff(tc.attempt, base); got != tc.want {
			t.Errorf("Backoff(%d, %s) = %s, want %s", tc.attempt, base, got, tc.want)
		}
	}
}

func TestBackoffZeroBase(t *testing.T) {
	if got := transport.Backoff(3, 0); got != 0 {
		t.Fatalf("Backoff(3, 0) = %s, want 0", got)
	}
}

func TestSleepZeroDurationReturnsImmediately(t *testing.T) {
	if err := transport.Sleep(context.Background(), 0); err != nil {
		t.Fatalf("Sleep(0): %v", err)
	}
}

func TestSleepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := transport.Sleep(ctx, time.Minute); err != context.Canceled {
		t.Fatalf("Sleep on cancelled context = %v, want context.Canceled", err)
	}
}

func TestSleepWaitsApproximately(t *testing.T) {
	start := time.Now()
	if err := transport.Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("Sleep returned after %s, want at least 20ms", elapsed)
	}
}
