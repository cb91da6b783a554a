package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-IP token bucket guarding the auth endpoints against
// floods. It is transport-level protection only; the registration guard's
// counted window lives in internal/guard.
type RateLimiter struct {
	mutex   sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	ttl     time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(r rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
		ttl:     ttl,
	}
}

func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := l.bucketFor(c.RealIP())
			if limiter.Allow() {
				return next(c)
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(limiter)))
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		}
	}
}

func (l *RateLimiter) bucketFor(ip string) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.buckets[ip]
	if !ok {
		l.evictStale()
		entry = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (l *RateLimiter) evictStale() {
	if l.ttl == 0 {
		return
	}
	cutoff := time.Now().Add(-l.ttl)
	for ip, entry := range l.buckets {
		if entry.lastSeen.Before(cutoff) {
			delete(l.buckets, ip)
		}
	}
}

// retryAfterSeconds peeks at the next token's arrival without consuming it.
func retryAfterSeconds(limiter *rate.Limiter) int {
	reservation := limiter.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()
	seconds := int(delay / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
