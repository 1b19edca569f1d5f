// Package ratelimiter keeps one token bucket per client key.
// Idle buckets are dropped after the expiration window.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
	timer      *time.Timer
}

func (b *bucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64
	capacity   float64
	expiration time.Duration
	now        func() time.Time
}

func New(rate, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		now:        time.Now,
	}
}

// Allow takes one token from key's bucket.
func (l *Limiter) Allow(key string) bool {
	return l.get(key).allow(l.now())
}

func (l *Limiter) get(key string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			tokens:     l.capacity,
			capacity:   l.capacity,
			rate:       l.rate,
			lastRefill: l.now(),
		}
		l.buckets[key] = b
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(l.expiration, func() { l.drop(key, b) })
	return b
}

func (l *Limiter) drop(key string, b *bucket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets[key] == b {
		delete(l.buckets, key)
	}
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop cancels all expiry timers.
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}

// Presets used by the router.
func OnceInSecond() *Limiter { return New(1, 1, time.Hour) }
func LoginBurst() *Limiter   { return New(1, 5, time.Hour) }
func Rps100() *Limiter       { return New(100, 100, time.Hour) }
