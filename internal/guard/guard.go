// Package guard implements the registration abuse checks: an IP deny-list
// and a per-IP fixed-window rate limit over a keyed store. Counters live in
// Redis when available and in process memory otherwise, behind the same
// interfaces so the flow is testable with fakes.
package guard

import (
	"context"
	"time"
)

// Blacklist answers whether an IP is on the deny-list.
type Blacklist interface {
	Contains(ctx context.Context, ip string) (bool, error)
}

// Result is the outcome of a rate-limit check. ResetAt is only meaningful
// when Allowed is false and tells the caller when the window opens again.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter counts an attempt for the key and reports whether it is still
// within the window budget. Implementations must tolerate concurrent calls
// for the same key without losing increments.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type Reason string

const (
	ReasonBlacklisted Reason = "blacklisted"
	ReasonRateLimited Reason = "rate_limited"
)

type Decision struct {
	Allowed bool
	Reason  Reason
	ResetAt time.Time
}

// Guard runs the blacklist check before the rate limiter. A deny-listed IP
// is rejected without touching any counter.
type Guard struct {
	limiter    RateLimiter
	blacklists []Blacklist
}

func New(limiter RateLimiter, blacklists ...Blacklist) *Guard {
	return &Guard{limiter: limiter, blacklists: blacklists}
}

func (g *Guard) Check(ctx context.Context, ip string) (Decision, error) {
	for _, blacklist := range g.blacklists {
		if blacklist == nil {
			continue
		}
		blocked, err := blacklist.Contains(ctx, ip)
		if err != nil {
			return Decision{}, err
		}
		if blocked {
			return Decision{Allowed: false, Reason: ReasonBlacklisted}, nil
		}
	}

	if g.limiter == nil {
		return Decision{Allowed: true}, nil
	}
	result, err := g.limiter.Allow(ctx, ip)
	if err != nil {
		return Decision{}, err
	}
	if !result.Allowed {
		return Decision{Allowed: false, Reason: ReasonRateLimited, ResetAt: result.ResetAt}, nil
	}
	return Decision{Allowed: true}, nil
}
