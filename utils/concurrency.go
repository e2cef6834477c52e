package utils

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces calls at least delay apart.
type RateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

// NewRateLimiter creates a RateLimiter with the given delay in milliseconds.
func NewRateLimiter(delayMs int) *RateLimiter {
	return &RateLimiter{delay: time.Duration(delayMs) * time.Millisecond}
}

// Wait blocks until enough time has passed since the previous call.
func (r *RateLimiter) Wait() {
	if r.delay <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if elapsed := time.Since(r.lastCall); elapsed < r.delay {
		time.Sleep(r.delay - elapsed)
	}
	r.lastCall = time.Now()
}

// WorkerPool bounds the number of concurrent jobs and rate limits their start.
type WorkerPool struct {
	semaphore chan struct{}
	limiter   *RateLimiter
	wg        sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		semaphore: make(chan struct{}, maxWorkers),
		limiter:   NewRateLimiter(rateLimitMs),
	}
}

// Submit blocks until a worker slot is free, then runs job in a goroutine.
// It returns ctx.Err() without running job if ctx ends first.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	select {
	case wp.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.limiter.Wait()
		job()
	}()
	return nil
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Set is a concurrency-safe set.
type Set[T comparable] struct {
	mu   sync.RWMutex
	seen map[T]struct{}
}

// NewSet creates an empty Set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{seen: make(map[T]struct{})}
}

// Add returns true if v was newly added, false if already present.
func (s *Set[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of elements.
func (s *Set[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
