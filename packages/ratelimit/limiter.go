package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Config controls admission
type Config struct {
	// Limit is the number of operation starts allowed per Window. Zero or
	// less disables rate limiting.
	Limit int
	// Window is the accounting interval for Limit.
	Window time.Duration
	// MaxConcurrent caps in-flight operations. Zero or less means unbounded.
	MaxConcurrent int
}

// DefaultConfig returns the limits the Vercel API tolerates for env commands
func DefaultConfig() Config {
	return Config{
		Limit:  6,
		Window: 10 * time.Second,
	}
}

// Limiter throttles operation starts and optionally bounds concurrency
type Limiter struct {
	config   Config
	limiter  *rate.Limiter
	sem      chan struct{} // nil when unbounded
	admitted atomic.Int64
}

// New creates a Limiter from cfg
func New(cfg Config) *Limiter {
	l := &Limiter{config: cfg}

	// One start every Window/Limit with no burst, so any Window holds at
	// most Limit starts.
	if cfg.Limit > 0 && cfg.Window > 0 {
		l.limiter = rate.NewLimiter(rate.Every(cfg.Window/time.Duration(cfg.Limit)), 1)
	}

	if cfg.MaxConcurrent > 0 {
		l.sem = make(chan struct{}, cfg.MaxConcurrent)
	}

	return l
}

// Unlimited returns a Limiter that admits everything immediately
func Unlimited() *Limiter {
	return New(Config{})
}

// Wait blocks until the rate limiter admits one operation start
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter != nil {
		return l.limiter.Wait(ctx)
	}
	return ctx.Err()
}

// Acquire acquires a slot from the concurrency semaphore
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.sem == nil {
		return ctx.Err()
	}
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot back to the semaphore
func (l *Limiter) Release() {
	if l.sem != nil {
		<-l.sem
	}
}

// Admit waits for a concurrency slot and a rate token. The returned release
// func must be called once the operation has finished.
func (l *Limiter) Admit(ctx context.Context) (func(), error) {
	if err := l.Acquire(ctx); err != nil {
		return func() {}, err
	}

	if err := l.Wait(ctx); err != nil {
		l.Release()
		return func() {}, err
	}

	l.admitted.Add(1)
	return l.Release, nil
}

// Admitted returns how many operations have been admitted so far
func (l *Limiter) Admitted() int64 {
	return l.admitted.Load()
}

// Config returns the configuration the limiter was built with
func (l *Limiter) Config() Config {
	return l.config
}
