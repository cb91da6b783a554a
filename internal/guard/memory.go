package guard

import (
	"context"
	"strings"
	"sync"
	"time"
)

type windowState struct {
	count       int
	windowStart time.Time
}

// MemoryRateLimiter is a fixed-window counter held in process memory. It is
// the fallback when Redis is not configured and the store used by tests.
// Counts are only correct within a single process.
type MemoryRateLimiter struct {
	mutex   sync.Mutex
	windows map[string]windowState
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryRateLimiter(max int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[string]windowState),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	state, ok := l.windows[key]
	if !ok || now.Sub(state.windowStart) >= l.window {
		state = windowState{count: 0, windowStart: now}
	}

	resetAt := state.windowStart.Add(l.window)
	if state.count >= l.max {
		l.windows[key] = state
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	state.count++
	l.windows[key] = state
	l.cleanup(now)
	return Result{Allowed: true, Remaining: l.max - state.count, ResetAt: resetAt}, nil
}

// cleanup drops windows that expired more than one window ago. Called under
// the mutex.
func (l *MemoryRateLimiter) cleanup(now time.Time) {
	if len(l.windows) < 1024 {
		return
	}
	cutoff := now.Add(-2 * l.window)
	for key, state := range l.windows {
		if state.windowStart.Before(cutoff) {
			delete(l.windows, key)
		}
	}
}

// StaticBlacklist is a fixed set of IPs, typically loaded from configuration
// at startup.
type StaticBlacklist struct {
	ips map[string]struct{}
}

func NewStaticBlacklist(ips []string) *StaticBlacklist {
	set := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		trimmed := strings.TrimSpace(ip)
		if trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return &StaticBlacklist{ips: set}
}

func (b *StaticBlacklist) Contains(_ context.Context, ip string) (bool, error) {
	_, blocked := b.ips[ip]
	return blocked, nil
}
