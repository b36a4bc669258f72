package api

import (
	"sync"
	"time"
)

// loginLimiter throttles failed logins per client IP with a fixed window.
// State is in-process; a multi-node deployment shares nothing, which is
// acceptable for a brute-force brake.
type loginLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*loginBucket
}

type loginBucket struct {
	windowStart time.Time
	failures    int
}

func newLoginLimiter(max int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*loginBucket),
	}
}

// blocked reports whether ip has exhausted its window, and how long until
// the window resets.
func (l *loginLimiter) blocked(ip string, now time.Time) (bool, time.Duration) {
	if l == nil || l.max <= 0 || ip == "" {
		return false, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok || now.Sub(b.windowStart) >= l.window {
		return false, 0
	}
	if b.failures >= l.max {
		return true, b.windowStart.Add(l.window).Sub(now)
	}
	return false, 0
}

// fail records a failed attempt for ip.
func (l *loginLimiter) fail(ip string, now time.Time) {
	if l == nil || l.max <= 0 || ip == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[ip] = &loginBucket{windowStart: now, failures: 1}
		l.sweepLocked(now)
		return
	}
	b.failures++
}

// success clears the bucket so a legitimate user is not penalized for old
// typos.
func (l *loginLimiter) success(ip string) {
	if l == nil || ip == "" {
		return
	}
	l.mu.Lock()
	delete(l.buckets, ip)
	l.mu.Unlock()
}

// sweepLocked drops expired buckets. Called opportunistically while the
// lock is already held.
func (l *loginLimiter) sweepLocked(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for ip, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, ip)
		}
	}
}
