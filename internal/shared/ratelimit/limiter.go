// Package ratelimit provides sliding window request limits keyed by caller.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter admits at most limit requests per key within any window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

const keyPrefix = "ratelimit:"

// slidingWindow trims the window, then records the request only if it fits.
// Returns {allowed, remaining}.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local expiry = tonumber(ARGV[4])
	local member = ARGV[5]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)
	if current >= limit then
		return {0, 0}
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, expiry)
	return {1, limit - current - 1}
`)

type redisLimiter struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisLimiter creates a limiter shared by every server instance.
func NewRedisLimiter(client redis.UniversalClient) Limiter {
	return &redisLimiter{client: client, now: time.Now}
}

func (l *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := l.now()
	member := fmt.Sprintf("%d:%s", now.UnixNano(), uuid.NewString())

	vals, err := slidingWindow.Run(ctx, l.client, []string{keyPrefix + key},
		now.Add(-window).UnixNano(),
		now.UnixNano(),
		limit,
		window.Milliseconds(),
		member,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}

	return &Result{
		Allowed:   vals[0] == 1,
		Remaining: int(vals[1]),
		ResetAt:   now.Add(window),
	}, nil
}

// sweepInterval bounds how often Allow scans every key for idle buckets.
const sweepInterval = time.Minute

type memoryBucket struct {
	hits   []time.Time
	window time.Duration
}

type memoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter creates a limiter local to this process, used when Redis
// is not configured.
func NewMemoryLimiter() Limiter {
	return &memoryLimiter{
		buckets: make(map[string]*memoryBucket),
		now:     time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &memoryBucket{}
	}
	b.window = window
	b.hits = pruneHits(b.hits, now.Add(-window))

	res := &Result{ResetAt: now.Add(window)}
	if len(b.hits) < limit {
		b.hits = append(b.hits, now)
		res.Allowed = true
		res.Remaining = limit - len(b.hits)
	}

	if len(b.hits) == 0 {
		delete(l.buckets, key)
	} else {
		l.buckets[key] = b
	}
	return res, nil
}

// sweep drops buckets whose newest hit has left their window.
func (l *memoryLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if n := len(b.hits); n == 0 || !b.hits[n-1].After(now.Add(-b.window)) {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

func pruneHits(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
