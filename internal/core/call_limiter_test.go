package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

func TestCallLimiter_AcquireRelease(t *testing.T) {
	limiter := NewCallLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.Available(); got != 2 {
		t.Errorf("initial Available = %d, want 2", got)
	}

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if got := limiter.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
	if got := limiter.Available(); got != 0 {
		t.Errorf("Available = %d, want 0", got)
	}

	limiter.Release()
	limiter.Release()

	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("after Release, ActiveCount = %d, want 0", got)
	}
}

func TestCallLimiter_Busy(t *testing.T) {
	limiter := NewCallLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	if err := limiter.Acquire(ctx); !errors.Is(err, ErrCatalogBusy) {
		t.Errorf("Acquire() error = %v, want ErrCatalogBusy", err)
	}
}

func TestCallLimiter_ContextCancelled(t *testing.T) {
	limiter := NewCallLimiter(1, time.Minute)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestCallLimiter_WaitForDrain(t *testing.T) {
	limiter := NewCallLimiter(1, time.Second)
	if err := limiter.WaitForDrain(context.Background()); err != nil {
		t.Fatalf("WaitForDrain on idle limiter: %v", err)
	}

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain() error = %v, want DeadlineExceeded", err)
	}

	limiter.Release()
	if err := limiter.WaitForDrain(context.Background()); err != nil {
		t.Errorf("WaitForDrain after Release: %v", err)
	}
}

func TestLimitCatalog_ReleasesSlots(t *testing.T) {
	fake := &fakeCatalog{products: sampleProducts()}
	limiter := NewCallLimiter(1, 20*time.Millisecond)
	cat := LimitCatalog(fake, limiter)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cat.List(ctx); err != nil {
			t.Fatalf("List #%d: %v", i, err)
		}
	}
	if _, err := cat.Update(ctx, 1, catalog.UpdateFields{Title: "x"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := cat.Create(ctx, catalog.CreateFields{Title: "y"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0", got)
	}
}
