package core

// call_limiter.go bounds the number of remote catalog calls in flight.
//
// Every session may hit the catalog at once; the limiter keeps the panel from
// opening more than a fixed number of outbound requests. A call that cannot
// get a slot within maxWait fails with ErrCatalogBusy.
//
// WaitForDrain lets shutdown wait for in-flight mutations to finish.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// ErrCatalogBusy is returned when all call slots stay occupied for maxWait.
var ErrCatalogBusy = errors.New("catalog busy: too many concurrent calls")

// DefaultMaxConcurrentCalls is the default number of parallel remote calls.
const DefaultMaxConcurrentCalls = 8

// DefaultMaxCallWait is how long to wait for a slot before rejecting.
const DefaultMaxCallWait = 10 * time.Second

// CallLimiter is a semaphore over outbound catalog calls.
type CallLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewCallLimiter allows at most maxConcurrent simultaneous calls.
func NewCallLimiter(maxConcurrent int, maxWait time.Duration) *CallLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentCalls
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxCallWait
	}

	return &CallLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire takes a slot. The caller must call Release when done.
func (l *CallLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrCatalogBusy
	}
}

// Release frees a slot taken by Acquire.
func (l *CallLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of calls in flight.
func (l *CallLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *CallLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no call is in flight or ctx is done.
func (l *CallLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// limitedCatalog runs every call of the wrapped Catalog under a CallLimiter.
type limitedCatalog struct {
	next    Catalog
	limiter *CallLimiter
}

// LimitCatalog wraps cat so that its calls share the limiter's slots.
func LimitCatalog(cat Catalog, limiter *CallLimiter) Catalog {
	return &limitedCatalog{next: cat, limiter: limiter}
}

func (c *limitedCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.limiter.Release()
	return c.next.List(ctx)
}

func (c *limitedCatalog) Update(ctx context.Context, id int, fields catalog.UpdateFields) (catalog.Product, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return catalog.Product{}, err
	}
	defer c.limiter.Release()
	return c.next.Update(ctx, id, fields)
}

func (c *limitedCatalog) Create(ctx context.Context, fields catalog.CreateFields) (catalog.Product, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return catalog.Product{}, err
	}
	defer c.limiter.Release()
	return c.next.Create(ctx, fields)
}
