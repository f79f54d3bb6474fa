package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	h "campusevents/internal/delivery/http/helpers"
)

// pruneThreshold bounds the window map; above it, expired entries are dropped
// during Allow.
const pruneThreshold = 4096

type requestWindow struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window per-IP request limiter. Its state is
// process-local; it is the only shared, mutable, cross-request resource in
// the system.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*requestWindow
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*requestWindow),
		now:     time.Now,
	}
}

// Allow records one request from ip and reports whether it is within the
// current window's limit.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.windows[ip]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[ip] = &requestWindow{start: now, count: 1}
		if len(l.windows) > pruneThreshold {
			l.prune(now)
		}
		return l.limit >= 1
	}
	w.count++
	return w.count <= l.limit
}

func (l *RateLimiter) prune(now time.Time) {
	for ip, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, ip)
		}
	}
}

// Middleware applies the limiter ahead of next, keyed by the remote IP.
// Over-limit requests get 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.Allow(ip) {
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
