package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// windowCounter counts events per key in fixed windows. All keys reset together
// when the window rolls over.
type windowCounter struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	started time.Time
	counts  map[string]int
}

func newWindowCounter(window time.Duration, now func() time.Time) *windowCounter {
	return &windowCounter{window: window, now: now, started: now(), counts: make(map[string]int)}
}

// incr bumps key and returns its count in the current window
func (c *windowCounter) incr(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t := c.now(); t.Sub(c.started) > c.window {
		c.counts = make(map[string]int)
		c.started = t
	}
	c.counts[key]++
	return c.counts[key]
}

func (c *windowCounter) get(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

// ActivityMonitor tracks request volume and failed admin logins per client IP
type ActivityMonitor struct {
	requests   *windowCounter
	authFailed *windowCounter
	maxPerIP   int
}

// NewActivityMonitor uses the package rate-limit window and ceiling
func NewActivityMonitor() *ActivityMonitor {
	return newActivityMonitor(RateLimitWindow, RateLimitMaxRequests, time.Now)
}

func newActivityMonitor(window time.Duration, maxPerIP int, now func() time.Time) *ActivityMonitor {
	return &ActivityMonitor{
		requests:   newWindowCounter(window, now),
		authFailed: newWindowCounter(window, now),
		maxPerIP:   maxPerIP,
	}
}

// Allow records a request from ip and reports whether it is under the ceiling
func (m *ActivityMonitor) Allow(ip string) bool {
	n := m.requests.incr(ip)
	if n <= m.maxPerIP {
		return true
	}
	if n%RateLimitLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// AuthFailed records a rejected admin key from ip
func (m *ActivityMonitor) AuthFailed(ip string) {
	if n := m.authFailed.incr(ip); n >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// RateLimitMiddleware answers 429 once a client IP passes the window ceiling
func RateLimitMiddleware(trustedProxies []string, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !monitor.Allow(clientIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
