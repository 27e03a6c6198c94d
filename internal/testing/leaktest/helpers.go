// Package leaktest checks that background goroutines started by a test
// (hub loops, worker pools, store listeners) have exited by the end of it.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to wind down
const settleTimeout = 2 * time.Second

const pollInterval = 10 * time.Millisecond

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	timeout  time.Duration
}

// NewGoroutineChecker records the baseline once the runtime has settled
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine(), timeout: settleTimeout}
}

// Check polls until at most tolerance goroutines remain above the baseline,
// failing the test if that does not happen before the timeout.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if n, ok := waitFor(g.baseline+tolerance, g.timeout); !ok {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d", g.baseline, n, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails t if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	g := NewGoroutineChecker(t)
	fn()
	g.Check(0)
}

func waitFor(limit int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
