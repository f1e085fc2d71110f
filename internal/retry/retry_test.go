package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"vtask/internal/apierr"
)

func fastPolicy() Policy {
	return Policy{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
		Timeout:      time.Second,
	}
}

func TestDo_SucceedsAfterRetryableFailures(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(), "op", func(ctx context.Context) (string, error) {
		attempts++
		if attempts <= 2 {
			return "", apierr.New(apierr.KindNetwork, "op", errors.New("refused"))
		}
		return "done", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("got %q, want %q", got, "done")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	start := time.Now()
	_, err := Do(context.Background(), Policy{
		MaxRetries:   5,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   2,
		Timeout:      time.Second,
	}, "op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, apierr.FromStatus("op", 404)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("non-retryable error waited %v before propagating", elapsed)
	}
	if apierr.StatusOf(err) != 404 {
		t.Errorf("expected status 404 preserved, got %v", err)
	}
}

func TestDo_ExhaustsRetriesAndReturnsLastError(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastPolicy(), "op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, apierr.FromStatus("op", 503)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (1 + 2 retries)", attempts)
	}
	if apierr.StatusOf(err) != 503 {
		t.Errorf("expected last error propagated, got %v", err)
	}
}

func TestDo_TimeoutClassified(t *testing.T) {
	p := fastPolicy()
	p.MaxRetries = 0
	p.Timeout = 10 * time.Millisecond
	_, err := Do(context.Background(), p, "slow op", func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if apierr.KindOf(err) != apierr.KindTimeout {
		t.Errorf("expected timeout kind, got %v", err)
	}
}

func TestDo_TimeoutIsRetried(t *testing.T) {
	p := fastPolicy()
	p.Timeout = 10 * time.Millisecond
	attempts := 0
	got, err := Do(context.Background(), p, "op", func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || attempts != 2 {
		t.Errorf("got %q after %d attempts, want ok after 2", got, attempts)
	}
}

func TestDo_ContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy()
	p.InitialDelay = time.Minute
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	_, err := Do(ctx, p, "op", func(ctx context.Context) (int, error) {
		return 0, apierr.New(apierr.KindNetwork, "op", errors.New("down"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > time.Second {
		t.Error("backoff did not respect context cancellation")
	}
	if apierr.KindOf(err) == apierr.KindTimeout {
		t.Errorf("cancellation misreported as a timeout: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled preserved, got %v", err)
	}
}

func TestDo_CancelDuringAttemptNotATimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy()
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := Do(ctx, p, "op", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if apierr.KindOf(err) == apierr.KindTimeout {
		t.Errorf("cancellation misreported as a timeout: %v", err)
	}
}

func TestPolicy_Delay(t *testing.T) {
	p := Policy{InitialDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second, Multiplier: 2}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 500 * time.Millisecond},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second}, // capped
		{10, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
