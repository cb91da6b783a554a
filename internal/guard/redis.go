package guard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter increment and expiry set in one round trip so concurrent
// registrations from the same IP never undercount and the window TTL is set
// exactly once.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

// RedisRateLimiter is a fixed-window counter shared across instances.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisRateLimiter {
	if prefix == "" {
		prefix = "register:rl"
	}
	return &RedisRateLimiter{client: client, prefix: prefix, max: max, window: window}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (Result, error) {
	values, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, err
	}
	if len(values) != 2 {
		return Result{}, redis.Nil
	}

	count := int(values[0])
	ttl := time.Duration(values[1]) * time.Millisecond
	if ttl < 0 {
		ttl = l.window
	}
	resetAt := time.Now().Add(ttl)

	if count > l.max {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}
	return Result{Allowed: true, Remaining: l.max - count, ResetAt: resetAt}, nil
}

// RedisBlacklist checks membership of a Redis set, so IPs can be blocked at
// runtime without a deploy.
type RedisBlacklist struct {
	client *redis.Client
	key    string
}

func NewRedisBlacklist(client *redis.Client, key string) *RedisBlacklist {
	if key == "" {
		key = "register:blacklist"
	}
	return &RedisBlacklist{client: client, key: key}
}

func (b *RedisBlacklist) Contains(ctx context.Context, ip string) (bool, error) {
	return b.client.SIsMember(ctx, b.key, ip).Result()
}
