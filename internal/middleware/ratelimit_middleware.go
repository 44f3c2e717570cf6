package middleware

import (
	"sync"
	"time"
)

// Default limits for failed logins.
const (
	DefaultLoginAttempts = 5
	DefaultLoginWindow   = time.Minute
)

// InvalidLoginRateLimiter counts rejected login attempts per IP.
// Successful logins are never counted.
type InvalidLoginRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string]*attemptInfo
	now      func() time.Time
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewInvalidLoginRateLimiter allows limit failures per window per IP.
func NewInvalidLoginRateLimiter(limit int, window time.Duration) *InvalidLoginRateLimiter {
	return &InvalidLoginRateLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string]*attemptInfo),
		now:      time.Now,
	}
}

// Allow records a failed attempt from ip and reports whether it is still
// within the limit.
func (r *InvalidLoginRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

// Prune drops expired windows and returns how many were removed.
func (r *InvalidLoginRateLimiter) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for ip, info := range r.attempts {
		if now.Sub(info.firstAt) > r.window {
			delete(r.attempts, ip)
			removed++
		}
	}
	return removed
}
